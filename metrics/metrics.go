// Package metrics exposes Prometheus instrumentation for the resolver
// service: resolution counts by status, snapshot refresh activity, and the
// size of the current override snapshot.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Resolutions *prometheus.CounterVec // status label

	RefreshTotal    prometheus.Counter
	RefreshErrors   prometheus.Counter
	RefreshDuration prometheus.Histogram

	SnapshotEntries *prometheus.GaugeVec // source label
	LastRefreshTime prometheus.Gauge     // unix seconds

	HTTPRequests *prometheus.CounterVec // route, code labels
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resolver_resolutions_total",
			Help: "Stop time resolutions by resulting status.",
		}, []string{"status"}),
		RefreshTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resolver_snapshot_refresh_total",
			Help: "Override snapshot refresh cycles.",
		}),
		RefreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resolver_snapshot_refresh_errors_total",
			Help: "Refresh cycles that failed to fetch or parse a source.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resolver_snapshot_refresh_duration_seconds",
			Help:    "Duration of override snapshot refresh cycles.",
			Buckets: prometheus.DefBuckets,
		}),
		SnapshotEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "resolver_snapshot_entries",
			Help: "Entries in the current override snapshot, per source.",
		}, []string{"source"}),
		LastRefreshTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "resolver_snapshot_last_refresh_timestamp_seconds",
			Help: "Unix time of the last successful snapshot refresh.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resolver_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	reg.MustRegister(
		c.Resolutions,
		c.RefreshTotal,
		c.RefreshErrors,
		c.RefreshDuration,
		c.SnapshotEntries,
		c.LastRefreshTime,
		c.HTTPRequests,
	)
	return c
}

// ObserveRefresh records one refresh cycle.
func (c *Collector) ObserveRefresh(start time.Time, failed bool) {
	c.RefreshTotal.Inc()
	c.RefreshDuration.Observe(time.Since(start).Seconds())
	if failed {
		c.RefreshErrors.Inc()
	} else {
		c.LastRefreshTime.SetToCurrentTime()
	}
}

// Handler serves the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
