package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	lib "github.com/urban-transit/schedule-resolver"
	"github.com/urban-transit/schedule-resolver/config"
	"github.com/urban-transit/schedule-resolver/gtfs"
	"github.com/urban-transit/schedule-resolver/metrics"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	configPath := flag.String("config", "config.yml", "path to config file")
	tripID := flag.String("trip", "", "trip_id to resolve (oneshot)")
	date := flag.String("date", "", "selected date YYYY-MM-DD (oneshot, default today)")
	tripUpdates := flag.String("tripUpdates", "", "GTFS-RT TripUpdates URL (overrides config)")
	flag.Parse()

	lib.InitLogging()
	_ = godotenv.Load()
	if err := config.LoadAppConfigFrom(*configPath); err != nil {
		log.Fatalf("loading config: %v", err)
	}
	cfg := config.Config
	if *tripUpdates != "" {
		cfg.Feed.TripUpdatesURL = *tripUpdates
	}

	idx, err := gtfs.NewIndexFromConfig(cfg.GTFS)
	if err != nil {
		log.Fatalf("loading static feed: %v", err)
	}
	loc, err := time.LoadLocation(idx.AgencyTimezone())
	if err != nil {
		log.Printf("unknown agency timezone %q, using local", idx.AgencyTimezone())
		loc = time.Local
	}

	collector := metrics.NewCollector()
	store := lib.NewStore(cfg, loc, collector)
	app := lib.NewApp(cfg, idx, store, collector)

	switch *mode {
	case "oneshot":
		trip := *tripID
		if trip == "" {
			if trips := idx.AllTripIDs(); len(trips) > 0 {
				trip = trips[0]
			}
		}
		selected := time.Now()
		if *date != "" {
			selected, err = time.ParseInLocation("2006-01-02", *date, time.Local)
			if err != nil {
				log.Fatalf("invalid -date: %v", err)
			}
		}
		if err := store.Refresh(); err != nil {
			log.Printf("refresh: %v", err)
		}
		view := app.ResolveTrip(trip, selected)
		buf, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			log.Fatalf("encoding result: %v", err)
		}
		fmt.Println(string(buf))
	case "serve":
		ctx, cancel := context.WithCancel(context.Background())
		go store.RunRefreshLoop(ctx, time.Duration(cfg.Feed.ReadIntervalMS)*time.Millisecond)
		app.StartServer()
		lib.HandleGracefulShutdown(cancel)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}
