package scheduleresolver

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/urban-transit/schedule-resolver/gtfs"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

func ensureTripExists(tripID string, idx *gtfs.Index) error {
	if tripID == "" {
		return &QueryError{Msg: "You must provide a tripId."}
	}
	if !idx.HasTrip(tripID) {
		return &QueryError{Msg: "No such trip: " + tripID + "."}
	}
	return nil
}

// parseDateParam accepts "YYYY-MM-DD"; empty means today.
func parseDateParam(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return time.Time{}, &QueryError{Msg: "date must be formatted YYYY-MM-DD."}
	}
	return d, nil
}

// parseSequenceParam accepts a non-negative integer; empty means unknown.
func parseSequenceParam(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, &QueryError{Msg: "seq must be a non-negative integer."}
	}
	return &v, nil
}

func buildErrorPayload(msg string) []byte {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return b
}
