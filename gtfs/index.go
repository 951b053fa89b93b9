package gtfs

import (
	"github.com/urban-transit/schedule-resolver/config"
)

// StopRow is one published stop_times.txt row: where a trip calls, in what
// order, and at what wall-clock times. Arrival/Departure keep the raw
// "HH:MM:SS" strings; empty means the feed omitted the time.
type StopRow struct {
	StopID    string
	Sequence  int
	Arrival   string
	Departure string
}

// Index stores GTFS static data in memory for fast lookups
type Index struct {
	agencyID   string
	agencyTZ   string
	agencyName string

	routeShortNames map[string]string    // route_id -> short_name
	routeTypes      map[string]int       // route_id -> route_type (GTFS enum)
	tripToRoute     map[string]string    // trip_id -> route_id
	tripHeadsign    map[string]string    // trip_id -> headsign
	stopNames       map[string]string    // stop_id -> name
	tripStops       map[string][]StopRow // trip_id -> rows ordered by sequence
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		routeShortNames: map[string]string{},
		routeTypes:      map[string]int{},
		tripToRoute:     map[string]string{},
		tripHeadsign:    map[string]string{},
		stopNames:       map[string]string{},
		tripStops:       map[string][]StopRow{},
	}
}

// NewIndexFromConfig creates and loads an index from configuration. A
// staticURL starting with http(s) is fetched; anything else is treated as a
// local zip path. An empty URL yields an empty index.
func NewIndexFromConfig(cfg config.GTFSConfig) (*Index, error) {
	g := NewIndex()
	g.agencyID = cfg.AgencyID
	if cfg.StaticURL == "" {
		return g, nil
	}
	if err := g.loadFromZip(cfg.StaticURL); err != nil {
		return g, err
	}
	return g, nil
}

// NewIndexFromBytes loads an index from an in-memory GTFS zip. Tests use
// this.
func NewIndexFromBytes(data []byte, agencyID string) (*Index, error) {
	g := NewIndex()
	g.agencyID = agencyID
	if err := g.loadFromZipBytes(data); err != nil {
		return g, err
	}
	return g, nil
}

func (g *Index) AgencyID() string   { return g.agencyID }
func (g *Index) AgencyName() string { return g.agencyName }

func (g *Index) AgencyTimezone() string {
	if g.agencyTZ != "" {
		return g.agencyTZ
	}
	return "Europe/Paris"
}

// HasTrip reports whether the static feed knows the trip.
func (g *Index) HasTrip(tripID string) bool {
	_, ok := g.tripStops[tripID]
	if !ok {
		_, ok = g.tripToRoute[tripID]
	}
	return ok
}

// TripStops returns the published rows of a trip, ordered by stop_sequence.
// The returned slice is the index's own; callers must not mutate it.
func (g *Index) TripStops(tripID string) []StopRow { return g.tripStops[tripID] }

func (g *Index) RouteForTrip(tripID string) string { return g.tripToRoute[tripID] }
func (g *Index) TripHeadsign(tripID string) string { return g.tripHeadsign[tripID] }
func (g *Index) StopName(stopID string) string     { return g.stopNames[stopID] }

func (g *Index) RouteShortName(routeID string) string { return g.routeShortNames[routeID] }
func (g *Index) RouteType(routeID string) int         { return g.routeTypes[routeID] }

// AllTripIDs returns every trip with at least one stop row, in map order.
func (g *Index) AllTripIDs() []string {
	ids := make([]string, 0, len(g.tripStops))
	for id := range g.tripStops {
		ids = append(ids, id)
	}
	return ids
}
