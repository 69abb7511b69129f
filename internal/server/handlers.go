package server

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/zarlcorp/fakepeople/internal/fixture"
	"github.com/zarlcorp/fakepeople/internal/person"
)

// maxBodyBytes caps uploaded CSV bodies.
const maxBodyBytes = 32 << 20

// handleParse decodes a CSV body into records and returns them as JSON.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) error {
	cr := csv.NewReader(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		// no header means no records
		writeJSON(w, http.StatusOK, []person.Record{})
		return nil
	}
	if err != nil {
		return csvError("parse csv header", err)
	}
	if !slices.Equal(header, person.Header) {
		return badRequest("csv header is %q, want %q", strings.Join(header, ","), strings.Join(person.Header, ","))
	}

	records := make([]person.Record, 0, 64)
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return csvError("parse csv record", err)
		}

		rec, err := person.FromFields(fields)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return badRequest("parse csv record on line %d: %v", line, err)
		}
		records = append(records, rec)
	}

	s.metrics.recordsParsed.Add(float64(len(records)))
	writeJSON(w, http.StatusOK, records)
	return nil
}

// csvError keeps oversized bodies as 413 and reports everything else as
// a malformed request.
func csvError(op string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return badRequest("%s: %v", op, err)
}

// handleFixture streams a freshly generated fixture.
func (s *Server) handleFixture(w http.ResponseWriter, r *http.Request) error {
	gen := person.New()
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return badRequest("invalid seed %q", v)
		}
		gen = person.NewSeeded(seed)
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="fake_people.csv"`)

	// the status line is gone once the first chunk is flushed, so a
	// failure here can only be logged
	if err := fixture.Write(w, gen, fixture.RecordCount); err != nil {
		s.log.Warn("fixture download", "err", err, "request_id", RequestID(r.Context()))
		return nil
	}

	s.metrics.recordsGenerated.Add(fixture.RecordCount)
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}
