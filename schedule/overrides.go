package schedule

import "time"

// Cancellation voids an entire trip for display purposes, regardless of any
// other override recorded for its stops.
type Cancellation struct {
	TripID string
	Reason string
}

// ManualDelay is an operator-entered, trip-wide delay in minutes. It outranks
// automated feed data and is the one override that survives the temporal
// gate. At most one manual delay is expected per trip.
type ManualDelay struct {
	TripID  string
	Minutes int
	Reason  string
}

// UpdatedTime is an absolute predicted arrival/departure from the automated
// feed. When both an UpdatedTime and a delay-minutes figure exist for the
// same key, the absolute time is the more precise source and wins.
type UpdatedTime struct {
	Arrival   *time.Time
	Departure *time.Time
}

// Overrides is one refresh cycle's read-only view over the four override
// sources. The engine never writes to it, and the zero value behaves as
// "no data". All five collections must come from the same refresh cycle;
// mixing snapshots is a caller-level bug the engine cannot detect.
type Overrides struct {
	Cancellations map[string]Cancellation // trip_id -> cancellation
	Skipped       map[StopKey]struct{}
	ManualDelays  map[string]ManualDelay // trip_id -> delay
	FeedDelays    map[StopKey]int        // minutes
	FeedTimes     map[StopKey]UpdatedTime
}

// NewOverrides returns an empty snapshot with every collection allocated.
func NewOverrides() Overrides {
	return Overrides{
		Cancellations: map[string]Cancellation{},
		Skipped:       map[StopKey]struct{}{},
		ManualDelays:  map[string]ManualDelay{},
		FeedDelays:    map[StopKey]int{},
		FeedTimes:     map[StopKey]UpdatedTime{},
	}
}

// Each source is probed independently: the qualified key first, then the
// unqualified key, but only when the caller supplied no sequence (or opted
// into fallback explicitly). A qualified miss with fallback disabled stays a
// miss even if unqualified data exists.

func (o Overrides) skipped(k StopKey, allowFallback bool) bool {
	if _, ok := o.Skipped[k]; ok {
		return true
	}
	if k.HasSequence && allowFallback {
		_, ok := o.Skipped[k.WithoutSequence()]
		return ok
	}
	return false
}

func (o Overrides) feedDelay(k StopKey, allowFallback bool) (int, bool) {
	if d, ok := o.FeedDelays[k]; ok {
		return d, true
	}
	if k.HasSequence && allowFallback {
		d, ok := o.FeedDelays[k.WithoutSequence()]
		return d, ok
	}
	return 0, false
}

func (o Overrides) feedTime(k StopKey, allowFallback bool) (UpdatedTime, bool) {
	if t, ok := o.FeedTimes[k]; ok {
		return t, true
	}
	if k.HasSequence && allowFallback {
		t, ok := o.FeedTimes[k.WithoutSequence()]
		return t, ok
	}
	return UpdatedTime{}, false
}
