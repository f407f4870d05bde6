package calendar

import "time"

const DayLayout = "2006-01-02"

// Day truncates t to midnight in its own location. Comparisons between
// events always go through Day, never through raw timestamps.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BeforeDay reports whether a falls on a calendar day strictly before b.
func BeforeDay(a, b time.Time) bool {
	return dayKey(a) < dayKey(b)
}

// OnOrAfterDay reports whether a falls on b's day or later.
func OnOrAfterDay(a, b time.Time) bool {
	return dayKey(a) >= dayKey(b)
}

// AddDays shifts t by n calendar days, keeping the time of day.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
