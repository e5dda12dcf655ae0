package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NextWorth/pkg/util"
)

func day(s string) time.Time {
	t, ok := util.ParseDate(s)
	if !ok {
		panic("bad date " + s)
	}
	return t
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		from string
		n    int
		want string
	}{
		{"2024-01-31", 1, "2024-02-29"}, // leap year
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-03-31", 1, "2024-04-30"},
		{"2024-12-15", 1, "2025-01-15"}, // year rollover
		{"2024-11-30", 3, "2025-02-28"},
		{"2024-05-10", 24, "2026-05-10"},
		{"2024-02-29", 12, "2025-02-28"},
	}
	for _, tt := range tests {
		got := AddMonths(day(tt.from), tt.n)
		assert.Equal(t, tt.want, util.FormatDate(got), "%s + %d", tt.from, tt.n)
	}
}

func TestSequenceEndOfJanuary(t *testing.T) {
	got := Sequence(day("2024-01-31"), 1)
	assert.Equal(t, []string{"2024-02-29"}, got)
}

func TestSequenceMonthEndAnchorKeepsMonthEnds(t *testing.T) {
	got := Sequence(day("2024-01-31"), 4)
	assert.Equal(t, []string{"2024-02-29", "2024-03-31", "2024-04-30", "2024-05-31"}, got)
}

func TestSequenceLengthAndMonthSteps(t *testing.T) {
	anchor := day("2023-10-15")
	for _, n := range []int{1, 3, 6, 12, 24, 60} {
		got := Sequence(anchor, n)
		require.Len(t, got, n)

		prev := anchor
		for _, s := range got {
			cur := day(s)
			assert.True(t, cur.After(prev), "%s must be after %s", s, prev)
			monthsApart := (cur.Year()-prev.Year())*12 + int(cur.Month()) - int(prev.Month())
			assert.Equal(t, 1, monthsApart, "%s vs %s", s, prev)
			prev = cur
		}
	}
}

func TestSequenceZero(t *testing.T) {
	assert.Empty(t, Sequence(day("2024-01-01"), 0))
}

func TestResolveAnchor(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 6, 17, 13, 45, 0, 0, time.UTC) }

	a, fellBack := ResolveAnchor("2024-12-01", now)
	assert.False(t, fellBack)
	assert.Equal(t, "2024-12-01", util.FormatDate(a))

	a, fellBack = ResolveAnchor("2024-12-01T23:59:59Z", now)
	assert.False(t, fellBack)
	assert.Equal(t, "2024-12-01", util.FormatDate(a))

	a, fellBack = ResolveAnchor("2024-01-31 00:00:00", now)
	assert.False(t, fellBack)
	assert.Equal(t, "2024-01-31", util.FormatDate(a))
	assert.Equal(t, []string{"2024-02-29", "2024-03-31", "2024-04-30"}, Sequence(a, 3))

	for _, bad := range []string{"", "not a date", "2024-13-01"} {
		a, fellBack = ResolveAnchor(bad, now)
		assert.True(t, fellBack, bad)
		assert.Equal(t, "2025-06-17", util.FormatDate(a), bad)
	}
}
