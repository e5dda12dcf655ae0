package util

import (
    "strings"
    "time"
)

// DateLayout is the calendar-date wire format (ISO 8601 date).
const DateLayout = "2006-01-02"

// ParseDate parses an ISO date. A time component, whether 'T' or space
// separated ("2024-01-31T10:00:00Z", "2024-01-31 10:00:00"), is ignored.
// Returns (t, true) on success, with t at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
    s = strings.TrimSpace(s)
    if s == "" {
        return time.Time{}, false
    }
    if i := strings.IndexAny(s, "T "); i >= 0 {
        s = s[:i]
    }
    t, err := time.Parse(DateLayout, s)
    if err != nil {
        return time.Time{}, false
    }
    return t, true
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
    return t.Format(DateLayout)
}
