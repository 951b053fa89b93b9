package gtfsrt

import (
	"fmt"
	"math"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/urban-transit/schedule-resolver/schedule"
)

// Snapshot is the override view extracted from one TripUpdates message.
// ApplyTo copies it into an engine snapshot; the ops layer fills in the
// operator-entered sources separately.
type Snapshot struct {
	Timestamp     int64 // feed header epoch
	Cancellations map[string]schedule.Cancellation
	Skipped       map[schedule.StopKey]struct{}
	FeedDelays    map[schedule.StopKey]int
	FeedTimes     map[schedule.StopKey]schedule.UpdatedTime
}

func emptySnapshot() Snapshot {
	return Snapshot{
		Cancellations: map[string]schedule.Cancellation{},
		Skipped:       map[schedule.StopKey]struct{}{},
		FeedDelays:    map[schedule.StopKey]int{},
		FeedTimes:     map[schedule.StopKey]schedule.UpdatedTime{},
	}
}

// ParseTripUpdates decodes a TripUpdates protobuf into a Snapshot. Predicted
// absolute times are converted into loc, which should be the agency's
// timezone so the engine's wall-clock arithmetic lines up with the published
// schedule. Nil data yields an empty snapshot.
func ParseTripUpdates(data []byte, loc *time.Location) (Snapshot, error) {
	snap := emptySnapshot()
	if len(data) == 0 {
		return snap, nil
	}
	if loc == nil {
		loc = time.Local
	}

	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return snap, fmt.Errorf("decoding trip updates: %w", err)
	}
	if fm.Header != nil && fm.Header.Timestamp != nil {
		snap.Timestamp = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		tu := e.TripUpdate
		if tu == nil || tu.Trip == nil || tu.Trip.TripId == nil {
			continue
		}
		tripID := *tu.Trip.TripId

		if tu.Trip.ScheduleRelationship != nil &&
			*tu.Trip.ScheduleRelationship == gtfsrtpb.TripDescriptor_CANCELED {
			snap.Cancellations[tripID] = schedule.Cancellation{TripID: tripID}
			continue
		}

		for _, stu := range tu.StopTimeUpdate {
			if stu.StopId == nil {
				continue
			}
			key := schedule.NewStopKey(tripID, *stu.StopId)
			if stu.StopSequence != nil {
				key = schedule.NewSequencedStopKey(tripID, *stu.StopId, int(*stu.StopSequence))
			}

			if stu.ScheduleRelationship != nil &&
				*stu.ScheduleRelationship == gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED {
				snap.Skipped[key] = struct{}{}
				continue
			}

			var updated schedule.UpdatedTime
			if stu.Arrival != nil && stu.Arrival.Time != nil {
				t := time.Unix(*stu.Arrival.Time, 0).In(loc)
				updated.Arrival = &t
			}
			if stu.Departure != nil && stu.Departure.Time != nil {
				t := time.Unix(*stu.Departure.Time, 0).In(loc)
				updated.Departure = &t
			}
			if updated.Arrival != nil || updated.Departure != nil {
				snap.FeedTimes[key] = updated
			}

			// departure delay preferred; arrival delay is the fallback
			if d, ok := delaySeconds(stu.Departure, stu.Arrival); ok {
				snap.FeedDelays[key] = int(math.Round(float64(d) / 60.0))
			}
		}
	}
	return snap, nil
}

func delaySeconds(events ...*gtfsrtpb.TripUpdate_StopTimeEvent) (int32, bool) {
	for _, ev := range events {
		if ev != nil && ev.Delay != nil {
			return *ev.Delay, true
		}
	}
	return 0, false
}

// ApplyTo copies the feed-sourced collections into an engine snapshot.
// Existing entries (e.g. operator cancellations) are not overwritten.
func (s Snapshot) ApplyTo(ov *schedule.Overrides) {
	for id, c := range s.Cancellations {
		if _, ok := ov.Cancellations[id]; !ok {
			ov.Cancellations[id] = c
		}
	}
	for k := range s.Skipped {
		ov.Skipped[k] = struct{}{}
	}
	for k, d := range s.FeedDelays {
		ov.FeedDelays[k] = d
	}
	for k, t := range s.FeedTimes {
		ov.FeedTimes[k] = t
	}
}
