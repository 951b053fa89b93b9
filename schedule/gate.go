package schedule

import "time"

// sameCalendarDay compares calendar dates in local time; time of day is
// ignored. This is the "today" check gating automated overrides.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsPastDue reports whether a published "HH:MM:SS" time has already elapsed.
// It answers for today's schedule only; any other selected date returns
// false. Overrides are deliberately not consulted: the question is whether
// the published time is in the past, independent of delay.
func (r *Resolver) IsPastDue(scheduledTime string, selectedDate time.Time) bool {
	now := r.now()
	if !sameCalendarDay(selectedDate, now) {
		return false
	}
	m, ok := ParseClock(scheduledTime)
	if !ok {
		return false
	}
	return m <= now.Hour()*60+now.Minute()
}
