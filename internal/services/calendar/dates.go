// Package calendar generates the monthly date grid that forecasts are aligned to.
package calendar

import (
	"time"

	"NextWorth/pkg/util"
)

// AddMonths moves t by n calendar months, clamping the day to the last valid
// day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// Sequence returns count dates, the i-th being anchor + i months (i from 1).
// Offsets are taken from the anchor, not chained, so a month-end anchor keeps
// landing on month ends: 2024-01-31 → 2024-02-29, 2024-03-31, 2024-04-30.
func Sequence(anchor time.Time, count int) []string {
	if count <= 0 {
		return []string{}
	}
	out := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, util.FormatDate(AddMonths(anchor, i)))
	}
	return out
}

// ResolveAnchor parses the last known history date. An empty or unparseable
// value falls back to now; fellBack reports whether that happened.
func ResolveAnchor(raw string, now func() time.Time) (anchor time.Time, fellBack bool) {
	if t, ok := util.ParseDate(raw); ok {
		return t, false
	}
	n := now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC), true
}
