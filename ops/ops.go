// Package ops loads operator-entered overrides (manual delays, trip
// cancellations, skipped stops) from a yaml file maintained by dispatch.
// The file is re-read on every refresh cycle so edits take effect without a
// restart.
package ops

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/urban-transit/schedule-resolver/schedule"
)

type manualDelayEntry struct {
	TripID  string `yaml:"tripId" validate:"required"`
	Minutes int    `yaml:"minutes"`
	Reason  string `yaml:"reason"`
}

type cancellationEntry struct {
	TripID string `yaml:"tripId" validate:"required"`
	Reason string `yaml:"reason"`
}

type skippedStopEntry struct {
	TripID       string `yaml:"tripId" validate:"required"`
	StopID       string `yaml:"stopId" validate:"required"`
	StopSequence *int   `yaml:"stopSequence"`
}

// Set is one parsed overrides file.
type Set struct {
	ManualDelays  []manualDelayEntry  `yaml:"manualDelays" validate:"dive"`
	Cancellations []cancellationEntry `yaml:"cancellations" validate:"dive"`
	SkippedStops  []skippedStopEntry  `yaml:"skippedStops" validate:"dive"`
}

// LoadFile reads and validates an overrides file. An empty path yields an
// empty set; operator data is optional.
func LoadFile(path string) (Set, error) {
	var s Set
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading overrides file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing overrides file: %w", err)
	}
	if err := validator.New().Struct(s); err != nil {
		return s, fmt.Errorf("validating overrides file: %w", err)
	}
	return s, nil
}

// ApplyTo copies the operator entries into an engine snapshot. Operator
// data outranks the automated feed, so it overwrites existing entries.
func (s Set) ApplyTo(ov *schedule.Overrides) {
	for _, c := range s.Cancellations {
		ov.Cancellations[c.TripID] = schedule.Cancellation{TripID: c.TripID, Reason: c.Reason}
	}
	for _, d := range s.ManualDelays {
		ov.ManualDelays[d.TripID] = schedule.ManualDelay{TripID: d.TripID, Minutes: d.Minutes, Reason: d.Reason}
	}
	for _, sk := range s.SkippedStops {
		key := schedule.NewStopKey(sk.TripID, sk.StopID)
		if sk.StopSequence != nil {
			key = schedule.NewSequencedStopKey(sk.TripID, sk.StopID, *sk.StopSequence)
		}
		ov.Skipped[key] = struct{}{}
	}
}
