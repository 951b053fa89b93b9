package schedule

import (
	"fmt"
	"math"
	"time"
)

// Status classifies a resolved stop time for display. Cancelled, skipped and
// the normal family are mutually exclusive and checked in that order.
type Status string

const (
	StatusNormal    Status = "normal"
	StatusLate      Status = "late"
	StatusEarly     Status = "early"
	StatusOnTime    Status = "on-time"
	StatusCancelled Status = "cancelled"
	StatusSkipped   Status = "skipped"
)

// Request carries one (trip, stop) resolution call.
type Request struct {
	ScheduledTime string // published "HH:MM:SS"; empty means no data
	TripID        string
	StopID        string
	StopSequence  *int // nil when the caller does not know the sequence

	RealtimeEnabled bool
	IsFirstStop     bool
	IsLastStop      bool

	// IsChangingTrip suppresses automated overrides while the UI is
	// mid-transition between trips, to avoid flicker. Manual delays still
	// apply.
	IsChangingTrip bool

	// AllowKeyFallback lets a sequence-qualified lookup fall back to the
	// unqualified key on a miss. Off by default: a feed that reports
	// sequences is trusted to key its data the same way.
	AllowKeyFallback bool

	SelectedDate time.Time
}

func (req Request) stopKey() StopKey {
	if req.StopSequence != nil {
		return NewSequencedStopKey(req.TripID, req.StopID, *req.StopSequence)
	}
	return NewStopKey(req.TripID, req.StopID)
}

// ResolvedStopTime is the display-ready merge of a published stop time with
// whatever overrides applied. Adjusted equals Original whenever no override
// was found, and Delay is nil whenever no numeric adjustment exists.
type ResolvedStopTime struct {
	Original      string  `json:"original"`
	Adjusted      string  `json:"adjusted"`
	Delay         *int    `json:"delay"`
	Status        Status  `json:"status"`
	DisplayDelay  *string `json:"displayDelay"`
	IsRealtime    bool    `json:"isRealtime"`
	IsCancelled   bool    `json:"isCancelled,omitempty"`
	IsSkipped     bool    `json:"isSkipped,omitempty"`
	IsManualDelay bool    `json:"isManualDelay,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

// Resolver merges published stop times with override snapshots. It holds
// nothing but the clock, so a single instance is safe for concurrent use.
type Resolver struct {
	now func() time.Time
}

// NewResolver returns a resolver on the system clock.
func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// NewResolverAt returns a resolver with a pinned clock. Tests use this.
func NewResolverAt(now func() time.Time) *Resolver {
	return &Resolver{now: now}
}

// noData is the "no information" result: a row renders the placeholder and
// nothing else.
func noData() ResolvedStopTime {
	return ResolvedStopTime{Original: "-", Adjusted: "-", Status: StatusNormal}
}

func unchanged(original string) ResolvedStopTime {
	return ResolvedStopTime{Original: original, Adjusted: original, Status: StatusNormal}
}

// Resolve turns one published stop time into its display value by applying
// the override precedence chain: cancellation, skip mark, temporal gate,
// manual delay, automated feed data. First match wins. The function is total;
// missing or malformed input yields the no-information result.
func (r *Resolver) Resolve(req Request, ov Overrides) ResolvedStopTime {
	origMin, ok := ParseClock(req.ScheduledTime)
	if !ok {
		return noData()
	}
	original := FormatClock(origMin)

	if c, hit := ov.Cancellations[req.TripID]; hit {
		return ResolvedStopTime{
			Original:    original,
			Adjusted:    original,
			Status:      StatusCancelled,
			IsCancelled: true,
			Reason:      c.Reason,
		}
	}

	key := req.stopKey()
	if ov.skipped(key, req.AllowKeyFallback) {
		// skip marks only ever come from real-time sources
		return ResolvedStopTime{
			Original:   original,
			Adjusted:   original,
			Status:     StatusSkipped,
			IsSkipped:  true,
			IsRealtime: true,
		}
	}

	manual, hasManual := ov.ManualDelays[req.TripID]
	gateOpen := req.RealtimeEnabled && !req.IsChangingTrip && sameCalendarDay(req.SelectedDate, r.now())
	if !gateOpen && !hasManual {
		return unchanged(original)
	}

	var (
		rawDelay float64
		adjusted string
		reason   string
	)
	if hasManual {
		// manual delay wins unconditionally; the feed maps are not consulted
		rawDelay = float64(manual.Minutes)
		adjusted = FormatClock(origMin + manual.Minutes)
		reason = manual.Reason
	} else {
		updated, hasUpdated := ov.feedTime(key, req.AllowKeyFallback)
		delayMin, hasDelay := ov.feedDelay(key, req.AllowKeyFallback)

		found := false
		if hasUpdated {
			t := updated.Departure
			if req.IsLastStop {
				t = updated.Arrival
			}
			if t != nil {
				adjMin := t.Hour()*60 + t.Minute()
				adjusted = FormatClock(adjMin)
				d := adjMin - origMin
				// keep near-midnight trips from reporting spurious ±23h delays
				if d < -halfDayMinutes {
					d += minutesPerDay
				} else if d > halfDayMinutes {
					d -= minutesPerDay
				}
				rawDelay = float64(d)
				found = true
			}
		}
		if !found && hasDelay {
			rawDelay = float64(delayMin)
			adjusted = FormatClock(origMin + delayMin)
			found = true
		}
		if !found {
			return unchanged(original)
		}
	}

	delay := int(math.Round(rawDelay))
	status := StatusOnTime
	switch {
	case delay > 0:
		status = StatusLate
	case delay < 0:
		status = StatusEarly
	}
	res := ResolvedStopTime{
		Original:      original,
		Adjusted:      adjusted,
		Delay:         &delay,
		Status:        status,
		IsRealtime:    true,
		IsManualDelay: hasManual,
		Reason:        reason,
	}
	if delay != 0 {
		dd := fmt.Sprintf("%+d min", delay)
		res.DisplayDelay = &dd
	}
	return res
}
