// Package gtfsrt fetches a GTFS-Realtime TripUpdates feed and translates it
// into the resolution engine's override collections: trip-level CANCELED
// entities become cancellations, stop-level SKIPPED updates become skip
// marks, delay seconds become feed-delay minutes, and absolute
// arrival/departure predictions become feed updated times.
package gtfsrt
