package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the server's collectors on a private registry.
type metrics struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	recordsParsed    prometheus.Counter
	recordsGenerated prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fakepeople_http_requests_total",
				Help: "HTTP requests handled, by route and status code",
			},
			[]string{"route", "code"},
		),
		recordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fakepeople_records_parsed_total",
			Help: "Records decoded from uploaded CSV bodies",
		}),
		recordsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fakepeople_records_generated_total",
			Help: "Records generated for fixture downloads",
		}),
	}

	m.registry.MustRegister(m.requests, m.recordsParsed, m.recordsGenerated)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{DisableCompression: true})
}

// instrument counts requests to route by response code.
func (m *metrics) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)
		m.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}
