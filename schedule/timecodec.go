package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minutesPerDay  = 24 * 60
	halfDayMinutes = minutesPerDay / 2
)

// ParseClock converts a GTFS-style "HH:MM:SS" wall-clock string to minutes
// since midnight. Only the leading "HH:MM" is read; seconds are ignored.
// Returns ok=false for strings that are too short or non-numeric.
func ParseClock(s string) (int, bool) {
	if len(s) < 5 {
		return 0, false
	}
	parts := strings.Split(s[:5], ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// FormatClock renders minutes since midnight as "HH:MM". Input outside
// [0,1440) wraps onto the 24h clock; negative values still yield a valid
// 0-23 hour.
func FormatClock(minutes int) string {
	m := minutes % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
