package board

import "time"

// StartOfWeek returns midnight of the Monday at or before t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	back := (int(t.Weekday()) + 6) % 7 // days since Monday
	return time.Date(y, m, d-back, 0, 0, 0, 0, t.Location())
}

// WeekIndex counts whole Monday-aligned weeks from weekZero to t; negative when t precedes weekZero.
// Both dates are read as calendar days in t's location so DST shifts never move a week boundary.
func WeekIndex(weekZero, t time.Time) int {
	from := calendarDay(StartOfWeek(weekZero.In(t.Location())))
	to := calendarDay(StartOfWeek(t))
	days := int(to.Sub(from).Hours() / 24)
	return floorDiv(days, 7)
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
