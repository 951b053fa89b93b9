package scheduleresolver

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

var server *http.Server

// statusWriter captures the response code for the request counter.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (a *App) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		h(sw, r)
		if a.collector != nil {
			a.collector.HTTPRequests.WithLabelValues(route, strconv.Itoa(sw.code)).Inc()
		}
	}
}

// Mux builds the HTTP routing table. Exposed for tests.
func (a *App) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", a.instrument("health", a.handleHealth))
	mux.HandleFunc("/api/departures", a.instrument("departures", a.handleDepartures))
	mux.HandleFunc("/api/stoptime", a.instrument("stoptime", a.handleStopTime))
	if a.collector != nil {
		mux.Handle("/metrics", a.collector.Handler())
	}
	return mux
}

func (a *App) StartServer() {
	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           a.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

func HandleGracefulShutdown(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	cancel()
	ctx, cancelTimeout := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelTimeout()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
