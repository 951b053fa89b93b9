package scheduleresolver

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/urban-transit/schedule-resolver/config"
	"github.com/urban-transit/schedule-resolver/gtfsrt"
	"github.com/urban-transit/schedule-resolver/metrics"
	"github.com/urban-transit/schedule-resolver/ops"
	"github.com/urban-transit/schedule-resolver/schedule"
)

// Store assembles the override snapshot the engine consumes: the automated
// feed and the operator overrides file are re-read each cycle and swapped in
// atomically, so every resolution within one request sees mutually
// consistent data.
type Store struct {
	client    *gtfsrt.Client
	feedURL   string
	opsFile   string
	loc       *time.Location
	collector *metrics.Collector

	mu          sync.RWMutex
	overrides   schedule.Overrides
	lastRefresh int64 // feed header epoch of the last successful refresh

	onRefresh func()
}

// NewStore builds a store from configuration. loc is the agency timezone the
// feed's absolute predictions are converted into.
func NewStore(cfg config.AppConfig, loc *time.Location, collector *metrics.Collector) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		client:    gtfsrt.NewClient(time.Duration(cfg.Feed.TimeoutMS) * time.Millisecond),
		feedURL:   cfg.Feed.TripUpdatesURL,
		opsFile:   cfg.Ops.OverridesFile,
		loc:       loc,
		collector: collector,
		overrides: schedule.NewOverrides(),
	}
}

// OnRefresh registers a hook run after every successful refresh (the server
// uses it to drop cached responses).
func (s *Store) OnRefresh(fn func()) { s.onRefresh = fn }

// Refresh rebuilds the snapshot from both sources. A source that fails is
// logged and skipped; the other still applies, so partial data degrades
// rather than blanking the view.
func (s *Store) Refresh() error {
	start := time.Now()
	var firstErr error

	ov := schedule.NewOverrides()
	var feedEpoch int64

	data, err := s.client.Fetch(s.feedURL)
	if err != nil {
		log.Printf("refresh: trip updates fetch failed: %v", err)
		firstErr = err
	} else {
		snap, err := gtfsrt.ParseTripUpdates(data, s.loc)
		if err != nil {
			log.Printf("refresh: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			snap.ApplyTo(&ov)
			feedEpoch = snap.Timestamp
		}
	}

	opsSet, err := ops.LoadFile(s.opsFile)
	if err != nil {
		log.Printf("refresh: %v", err)
		if firstErr == nil {
			firstErr = err
		}
	} else {
		opsSet.ApplyTo(&ov)
	}

	s.mu.Lock()
	s.overrides = ov
	if feedEpoch > 0 {
		s.lastRefresh = feedEpoch
	} else {
		s.lastRefresh = time.Now().Unix()
	}
	s.mu.Unlock()

	if s.collector != nil {
		s.collector.ObserveRefresh(start, firstErr != nil)
		s.collector.SnapshotEntries.WithLabelValues("cancellations").Set(float64(len(ov.Cancellations)))
		s.collector.SnapshotEntries.WithLabelValues("skipped").Set(float64(len(ov.Skipped)))
		s.collector.SnapshotEntries.WithLabelValues("manual_delays").Set(float64(len(ov.ManualDelays)))
		s.collector.SnapshotEntries.WithLabelValues("feed_delays").Set(float64(len(ov.FeedDelays)))
		s.collector.SnapshotEntries.WithLabelValues("feed_times").Set(float64(len(ov.FeedTimes)))
	}
	if s.onRefresh != nil {
		s.onRefresh()
	}
	return firstErr
}

// Snapshot returns the current override snapshot and the epoch it was built
// from. The snapshot is shared; callers treat it as read-only, which the
// engine guarantees.
func (s *Store) Snapshot() (schedule.Overrides, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overrides, s.lastRefresh
}

// RunRefreshLoop refreshes on a fixed interval until ctx is done. The first
// refresh happens immediately.
func (s *Store) RunRefreshLoop(ctx context.Context, interval time.Duration) {
	if err := s.Refresh(); err != nil {
		log.Printf("initial snapshot refresh: %v", err)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(); err != nil {
				log.Printf("snapshot refresh: %v", err)
			}
		}
	}
}
