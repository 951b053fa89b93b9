package schedule

// StopTimes is the published arrival/departure pair for one stop row.
// Either field may be empty; GTFS allows times to be omitted on
// non-timepoint stops.
type StopTimes struct {
	Arrival   string
	Departure string
}

func pickTime(preferred, fallback string) (int, bool) {
	if m, ok := ParseClock(preferred); ok {
		return m, true
	}
	return ParseClock(fallback)
}

// DurationBetweenStops computes the theoretical travel/dwell time in minutes
// between two consecutive stops on a trip, independent of real-time state.
// The origin side prefers its departure time, the destination side its
// arrival time. A destination numerically earlier than the origin is taken
// as a single midnight crossing, never more. Returns 0 when either side
// lacks a usable time.
func DurationBetweenStops(origin, destination StopTimes) int {
	o, ok := pickTime(origin.Departure, origin.Arrival)
	if !ok {
		return 0
	}
	d, ok := pickTime(destination.Arrival, destination.Departure)
	if !ok {
		return 0
	}
	diff := d - o
	if diff < 0 {
		diff += minutesPerDay
	}
	return diff
}
