package scheduleresolver

import (
	"encoding/json"
	"net/http"
)

func (a *App) handleDepartures(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query()

	tripID := q.Get("tripId")
	if err := ensureTripExists(tripID, a.gtfs); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	selectedDate, err := parseDateParam(q.Get("date"), a.resolverNow())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}

	cacheKey := r.URL.Path + "?" + r.URL.RawQuery
	if buf, ok := a.cache.get(cacheKey); ok {
		_, _ = w.Write(buf)
		return
	}

	view := a.ResolveTrip(tripID, selectedDate)
	buf, err := json.Marshal(view)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	a.cache.set(cacheKey, buf)
	_, _ = w.Write(buf)
}

func (a *App) handleStopTime(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query()

	tripID := q.Get("tripId")
	if err := ensureTripExists(tripID, a.gtfs); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	stopID := q.Get("stopId")
	if stopID == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload("You must provide a stopId."))
		return
	}
	seq, err := parseSequenceParam(q.Get("seq"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	selectedDate, err := parseDateParam(q.Get("date"), a.resolverNow())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}

	resolved, ok := a.ResolveStop(tripID, stopID, seq, selectedDate)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write(buildErrorPayload("Trip " + tripID + " does not call at stop " + stopID + "."))
		return
	}
	_ = json.NewEncoder(w).Encode(resolved)
}
