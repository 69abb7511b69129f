// Package server implements the fakepeople HTTP API: CSV-to-JSON parsing
// of people fixtures, fixture downloads, health and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the API on a single address.
type Server struct {
	addr    string
	log     *slog.Logger
	metrics *metrics
	mux     *http.ServeMux
}

// New creates a server that will listen on addr.
func New(addr string, log *slog.Logger) *Server {
	s := &Server{
		addr:    addr,
		log:     log,
		metrics: newMetrics(),
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.route("POST /api/parse", wrap(s.handleParse))
	s.route("GET /api/fixture", wrap(s.handleFixture))
	s.route("GET /healthz", wrap(s.handleHealth))
	s.route("GET /metrics", s.metrics.handler())
}

func (s *Server) route(pattern string, h http.Handler) {
	s.mux.Handle(pattern, s.metrics.instrument(pattern, h))
}

// Handler returns the full middleware chain around the routes.
func (s *Server) Handler() http.Handler {
	return withRequestID(withLogging(s.log, withCompression(s.mux)))
}

// Run listens and serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	s.log.Info("starting server", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.log.Info("bye")
	return nil
}
