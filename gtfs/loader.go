package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
)

func (g *Index) loadFromZip(source string) error {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return fmt.Errorf("fetching static feed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetching static feed: HTTP %d from %s", resp.StatusCode, source)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading static feed: %w", err)
		}
		return g.loadFromZipBytes(data)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("reading static feed: %w", err)
	}
	return g.loadFromZipBytes(data)
}

func (g *Index) loadFromZipBytes(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("opening static feed zip: %w", err)
	}
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		switch name {
		case "agency.txt", "routes.txt", "trips.txt", "stops.txt", "stop_times.txt":
			if err := g.consumeCSV(f); err != nil {
				return fmt.Errorf("parsing %s: %w", f.Name, err)
			}
		}
	}
	return nil
}

func (g *Index) consumeCSV(f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) < 2 {
		return nil
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	switch strings.ToLower(f.Name) {
	case "agency.txt":
		agID := idx("agency_id")
		agTZ := idx("agency_timezone")
		agName := idx("agency_name")
		if agID >= 0 && g.agencyID == "" {
			g.agencyID = rec[1][agID]
		}
		if agTZ >= 0 {
			g.agencyTZ = rec[1][agTZ]
		}
		if agName >= 0 {
			g.agencyName = rec[1][agName]
		}
	case "routes.txt":
		rID := idx("route_id")
		rSN := idx("route_short_name")
		rType := idx("route_type")
		if rID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			if rSN >= 0 {
				g.routeShortNames[row[rID]] = row[rSN]
			}
			if rType >= 0 {
				if typeInt, err := strconv.Atoi(row[rType]); err == nil {
					g.routeTypes[row[rID]] = typeInt
				}
			}
		}
	case "trips.txt":
		rID := idx("route_id")
		tID := idx("trip_id")
		hs := idx("trip_headsign")
		if tID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			if rID >= 0 {
				g.tripToRoute[row[tID]] = row[rID]
			}
			if hs >= 0 {
				g.tripHeadsign[row[tID]] = row[hs]
			}
		}
	case "stops.txt":
		sID := idx("stop_id")
		sN := idx("stop_name")
		if sID < 0 || sN < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			g.stopNames[row[sID]] = row[sN]
		}
	case "stop_times.txt":
		tID := idx("trip_id")
		sID := idx("stop_id")
		sq := idx("stop_sequence")
		arrTime := idx("arrival_time")
		depTime := idx("departure_time")
		if tID < 0 || sID < 0 || sq < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			seq, _ := strconv.Atoi(row[sq])
			sr := StopRow{StopID: row[sID], Sequence: seq}
			if arrTime >= 0 && arrTime < len(row) {
				sr.Arrival = row[arrTime]
			}
			if depTime >= 0 && depTime < len(row) {
				sr.Departure = row[depTime]
			}
			g.tripStops[row[tID]] = append(g.tripStops[row[tID]], sr)
		}
		for trip := range g.tripStops {
			rows := g.tripStops[trip]
			sort.Slice(rows, func(i, j int) bool { return rows[i].Sequence < rows[j].Sequence })
		}
	}
	return nil
}
