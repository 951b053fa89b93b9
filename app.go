package scheduleresolver

import (
	"time"

	"github.com/urban-transit/schedule-resolver/config"
	"github.com/urban-transit/schedule-resolver/gtfs"
	"github.com/urban-transit/schedule-resolver/metrics"
	"github.com/urban-transit/schedule-resolver/schedule"
)

// App wires the static index, the override store and the resolution engine
// behind the HTTP surface and the CLI.
type App struct {
	cfg       config.AppConfig
	gtfs      *gtfs.Index
	store     *Store
	resolver  *schedule.Resolver
	cache     *responseCache
	collector *metrics.Collector
	now       func() time.Time
}

func NewApp(cfg config.AppConfig, idx *gtfs.Index, store *Store, collector *metrics.Collector) *App {
	a := &App{
		cfg:       cfg,
		gtfs:      idx,
		store:     store,
		resolver:  schedule.NewResolver(),
		cache:     newResponseCache(),
		collector: collector,
		now:       time.Now,
	}
	store.OnRefresh(a.cache.invalidate)
	return a
}

// withClock pins the app and engine clock; tests use this.
func (a *App) withClock(now func() time.Time) *App {
	a.now = now
	a.resolver = schedule.NewResolverAt(now)
	return a
}

func (a *App) resolverNow() time.Time { return a.now() }

// StopView is one rendered row of a trip's schedule.
type StopView struct {
	StopID   string `json:"stopId"`
	StopName string `json:"stopName"`
	Sequence int    `json:"sequence"`

	schedule.ResolvedStopTime

	PastDue bool `json:"pastDue"`
	// TravelMinutes is the theoretical duration from the previous stop;
	// zero for the first row.
	TravelMinutes int `json:"travelMinutesFromPrevious"`
}

// TripView is a trip's full resolved schedule for one selected date.
type TripView struct {
	TripID    string     `json:"tripId"`
	RouteID   string     `json:"routeId"`
	RouteName string     `json:"routeName"`
	Headsign  string     `json:"headsign"`
	Date      string     `json:"date"`
	FeedEpoch int64      `json:"feedEpoch"`
	Stops     []StopView `json:"stops"`
}

// rowTime picks the published time a rider sees for a row: arrival at the
// terminus, departure elsewhere, each falling back to the other when the
// feed omitted one.
func rowTime(row gtfs.StopRow, isLast bool) string {
	if isLast {
		if row.Arrival != "" {
			return row.Arrival
		}
		return row.Departure
	}
	if row.Departure != "" {
		return row.Departure
	}
	return row.Arrival
}

// ResolveTrip resolves every stop of a trip against the current override
// snapshot.
func (a *App) ResolveTrip(tripID string, selectedDate time.Time) TripView {
	ov, epoch := a.store.Snapshot()
	rows := a.gtfs.TripStops(tripID)
	routeID := a.gtfs.RouteForTrip(tripID)

	view := TripView{
		TripID:    tripID,
		RouteID:   routeID,
		RouteName: a.gtfs.RouteShortName(routeID),
		Headsign:  a.gtfs.TripHeadsign(tripID),
		Date:      selectedDate.Format("2006-01-02"),
		FeedEpoch: epoch,
		Stops:     make([]StopView, 0, len(rows)),
	}

	for i, row := range rows {
		isFirst := i == 0
		isLast := i == len(rows)-1
		seq := row.Sequence
		scheduled := rowTime(row, isLast)

		resolved := a.resolver.Resolve(schedule.Request{
			ScheduledTime:    scheduled,
			TripID:           tripID,
			StopID:           row.StopID,
			StopSequence:     &seq,
			RealtimeEnabled:  !a.cfg.Resolver.DisableRealtime,
			IsFirstStop:      isFirst,
			IsLastStop:       isLast,
			AllowKeyFallback: a.cfg.Resolver.AllowKeyFallback,
			SelectedDate:     selectedDate,
		}, ov)
		if a.collector != nil {
			a.collector.Resolutions.WithLabelValues(string(resolved.Status)).Inc()
		}

		travel := 0
		if !isFirst {
			prev := rows[i-1]
			travel = schedule.DurationBetweenStops(
				schedule.StopTimes{Arrival: prev.Arrival, Departure: prev.Departure},
				schedule.StopTimes{Arrival: row.Arrival, Departure: row.Departure},
			)
		}

		view.Stops = append(view.Stops, StopView{
			StopID:           row.StopID,
			StopName:         a.gtfs.StopName(row.StopID),
			Sequence:         seq,
			ResolvedStopTime: resolved,
			PastDue:          a.resolver.IsPastDue(scheduled, selectedDate),
			TravelMinutes:    travel,
		})
	}
	return view
}

// ResolveStop resolves a single (trip, stop) pair. When sequence is nil the
// first matching stop row is used, and the override lookup runs on the
// unqualified key.
func (a *App) ResolveStop(tripID, stopID string, sequence *int, selectedDate time.Time) (schedule.ResolvedStopTime, bool) {
	rows := a.gtfs.TripStops(tripID)
	for i, row := range rows {
		if row.StopID != stopID {
			continue
		}
		if sequence != nil && row.Sequence != *sequence {
			continue
		}
		isLast := i == len(rows)-1
		ov, _ := a.store.Snapshot()
		resolved := a.resolver.Resolve(schedule.Request{
			ScheduledTime:    rowTime(row, isLast),
			TripID:           tripID,
			StopID:           stopID,
			StopSequence:     sequence,
			RealtimeEnabled:  !a.cfg.Resolver.DisableRealtime,
			IsFirstStop:      i == 0,
			IsLastStop:       isLast,
			AllowKeyFallback: a.cfg.Resolver.AllowKeyFallback,
			SelectedDate:     selectedDate,
		}, ov)
		if a.collector != nil {
			a.collector.Resolutions.WithLabelValues(string(resolved.Status)).Inc()
		}
		return resolved, true
	}
	return schedule.ResolvedStopTime{}, false
}
