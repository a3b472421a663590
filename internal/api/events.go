package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/doorsentry/core/internal/event"
)

// handleListEvents returns access events newest-first, optionally bounded
// by from/to date query parameters (inclusive, YYYY-MM-DD).
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRangeParams(w, r)
	if !ok {
		return
	}

	events, err := s.events.List(r.Context(), from, to)
	if err != nil {
		s.logger.Error("listing events failed", "error", err)
		writeInternalError(w, "failed to list events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}

// handleEventFrequency returns per-actor access counts, most frequent first.
func (s *Server) handleEventFrequency(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRangeParams(w, r)
	if !ok {
		return
	}

	freqs, err := s.events.FrequencyByActor(r.Context(), from, to)
	if err != nil {
		s.logger.Error("event frequency query failed", "error", err)
		writeInternalError(w, "failed to compute frequency")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"frequency": freqs,
	})
}

// handleEventCallback records a device-reported access event.
// Reached only through the callback secret middleware.
func (s *Server) handleEventCallback(w http.ResponseWriter, r *http.Request) {
	var report event.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	recorded, err := s.ingestor.RecordEvent(r.Context(), report)
	switch {
	case errors.Is(err, event.ErrDateRequired),
		errors.Is(err, event.ErrTimeRequired),
		errors.Is(err, event.ErrBadDate),
		errors.Is(err, event.ErrBadTime):
		writeValidationError(w, err.Error())
	case err != nil:
		s.logger.Error("event callback failed", "error", err)
		writeInternalError(w, "failed to record event")
	default:
		writeJSON(w, http.StatusCreated, recorded)
	}
}

// dateRangeParams reads and validates optional from/to date query
// parameters. On a malformed date it writes the error response and
// returns ok=false.
func dateRangeParams(w http.ResponseWriter, r *http.Request) (from, to string, ok bool) {
	from = r.URL.Query().Get("from")
	to = r.URL.Query().Get("to")
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if !validDate(d) {
			writeValidationError(w, "dates must be YYYY-MM-DD")
			return "", "", false
		}
	}
	return from, to, true
}

// validDate reports whether d parses as a YYYY-MM-DD date.
func validDate(d string) bool {
	_, err := time.Parse(event.DateLayout, d)
	return err == nil
}
