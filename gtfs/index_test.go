package gtfs

import (
	"archive/zip"
	"bytes"
	"testing"
)

// buildGTFSZip builds a minimal valid GTFS zip in memory
func buildGTFSZip(t *testing.T) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	agency, _ := w.Create("agency.txt")
	_, _ = agency.Write([]byte("agency_id,agency_name,agency_url,agency_timezone\nSTAR,Réseau STAR,http://example.com,Europe/Paris\n"))

	stops, _ := w.Create("stops.txt")
	_, _ = stops.Write([]byte("stop_id,stop_name,stop_lat,stop_lon\nS1,République,48.11,-1.68\nS2,Gares,48.10,-1.67\nS3,Henri Fréville,48.09,-1.66\n"))

	routes, _ := w.Create("routes.txt")
	_, _ = routes.Write([]byte("route_id,agency_id,route_short_name,route_long_name,route_type\nA,STAR,a,Ligne a,1\n"))

	trips, _ := w.Create("trips.txt")
	_, _ = trips.Write([]byte("route_id,service_id,trip_id,trip_headsign\nA,WEEK,T1,J.F. Kennedy\n"))

	stopTimes, _ := w.Create("stop_times.txt")
	_, _ = stopTimes.Write([]byte(
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"T1,08:10:00,08:11:00,S2,2\n" + // out of order on purpose
			"T1,08:00:00,08:02:00,S1,1\n" +
			"T1,08:20:00,,S3,3\n"))

	_ = w.Close()
	return buf.Bytes()
}

func TestNewIndexFromBytes(t *testing.T) {
	g, err := NewIndexFromBytes(buildGTFSZip(t), "")
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}

	if g.AgencyID() != "STAR" {
		t.Errorf("agency id = %q, want STAR", g.AgencyID())
	}
	if g.AgencyTimezone() != "Europe/Paris" {
		t.Errorf("timezone = %q", g.AgencyTimezone())
	}
	if !g.HasTrip("T1") || g.HasTrip("T2") {
		t.Error("trip existence checks wrong")
	}
	if g.RouteForTrip("T1") != "A" {
		t.Errorf("route for T1 = %q", g.RouteForTrip("T1"))
	}
	if g.TripHeadsign("T1") != "J.F. Kennedy" {
		t.Errorf("headsign = %q", g.TripHeadsign("T1"))
	}
	if g.StopName("S1") != "République" {
		t.Errorf("stop name = %q", g.StopName("S1"))
	}
	if g.RouteType("A") != 1 {
		t.Errorf("route type = %d", g.RouteType("A"))
	}
}

func TestTripStopsOrderedBySequence(t *testing.T) {
	g, err := NewIndexFromBytes(buildGTFSZip(t), "")
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}

	rows := g.TripStops("T1")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	wantStops := []string{"S1", "S2", "S3"}
	for i, want := range wantStops {
		if rows[i].StopID != want {
			t.Errorf("row %d stop = %q, want %q", i, rows[i].StopID, want)
		}
		if rows[i].Sequence != i+1 {
			t.Errorf("row %d sequence = %d, want %d", i, rows[i].Sequence, i+1)
		}
	}
	if rows[0].Departure != "08:02:00" {
		t.Errorf("first departure = %q", rows[0].Departure)
	}
	if rows[2].Departure != "" {
		t.Errorf("terminus departure should be empty, got %q", rows[2].Departure)
	}
	if rows[2].Arrival != "08:20:00" {
		t.Errorf("terminus arrival = %q", rows[2].Arrival)
	}
}

func TestAgencyIDFromConfigWins(t *testing.T) {
	g, err := NewIndexFromBytes(buildGTFSZip(t), "CUSTOM")
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	if g.AgencyID() != "CUSTOM" {
		t.Errorf("agency id = %q, want CUSTOM", g.AgencyID())
	}
}
