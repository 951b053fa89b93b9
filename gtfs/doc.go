// Package gtfs loads a static GTFS feed (zip from URL, local path, or raw
// bytes) into an in-memory index of published stop times. It supplies the
// theoretical schedule that the resolution engine adjusts and knows nothing
// about real-time data.
package gtfs
