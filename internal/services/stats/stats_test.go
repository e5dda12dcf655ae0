package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	s := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 2.0, s.Std, 1e-12) // population std
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.Equal(t, 4.5, s.Median)
	assert.Equal(t, 8, s.Count)
}

func TestDescribeEmpty(t *testing.T) {
	s := Describe(nil)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.Mean)
}

func TestMedianOddAndUnsorted(t *testing.T) {
	in := []float64{9, 1, 5}
	assert.Equal(t, 5.0, Median(in))
	assert.Equal(t, []float64{9, 1, 5}, in, "input must not be reordered")
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestNormalizeRoundTrip(t *testing.T) {
	cases := [][]float64{
		{130.5, 135.2, 128.9, 140.0},
		{0.01, 1e6, 42},
		{3, 1, 2},
		{100.25, 100.5},
	}
	for _, prices := range cases {
		norm, lo, hi := Normalize(prices)
		require.NotEqual(t, lo, hi)
		for _, v := range norm {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		back := Denormalize(norm, lo, hi)
		require.Len(t, back, len(prices))
		for i := range prices {
			assert.InDelta(t, prices[i], back[i], 1e-9*math.Max(1, math.Abs(prices[i])))
		}
	}
}

func TestNormalizeConstantSeries(t *testing.T) {
	prices := []float64{50, 50, 50}
	norm, lo, hi := Normalize(prices)

	assert.Equal(t, prices, norm)
	assert.Equal(t, lo, hi)
	assert.Equal(t, 50.0, lo)
	assert.Equal(t, prices, Denormalize(norm, lo, hi))
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	prices := []float64{1, 2, 3}
	_, _, _ = Normalize(prices)
	assert.Equal(t, []float64{1, 2, 3}, prices)
}

func TestDetectOutliers(t *testing.T) {
	assert.Empty(t, DetectOutliers([]float64{10, 10, 10, 10}, DefaultOutlierThreshold))

	prices := make([]float64, 0, 20)
	for i := 0; i < 19; i++ {
		prices = append(prices, 10)
	}
	prices = append(prices, 1000)
	assert.Equal(t, []int{19}, DetectOutliers(prices, DefaultOutlierThreshold))
}

// With five points the largest attainable population z-score is 2, so the
// single spike in [10,10,10,10,1000] is flagged only for thresholds below it.
func TestDetectOutliersShortSeries(t *testing.T) {
	prices := []float64{10, 10, 10, 10, 1000}
	assert.Equal(t, []int{4}, DetectOutliers(prices, 1.5))
	assert.Empty(t, DetectOutliers(prices, DefaultOutlierThreshold))
}

func TestDetectOutliersEmptyIsNonNil(t *testing.T) {
	out := DetectOutliers(nil, DefaultOutlierThreshold)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestCheckChronological(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		ok    bool
		at    int
	}{
		{"increasing", []string{"2024-01-01", "2024-02-01", "2024-03-01"}, true, -1},
		{"single", []string{"2024-01-01"}, true, -1},
		{"empty entries skipped", []string{"2024-01-01", "", "2024-03-01"}, true, -1},
		{"tie", []string{"2024-01-01", "2024-01-01"}, false, 1},
		{"decreasing", []string{"2024-03-01", "2024-04-01", "2024-02-01"}, false, 2},
		{"unparseable", []string{"2024-01-01", "garbage"}, false, 1},
		{"datetime suffix", []string{"2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"}, true, -1},
		{"space separated time", []string{"2023-11-30 00:00:00", "2023-12-31 00:00:00", "2024-01-31 00:00:00"}, true, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, at := CheckChronological(tt.dates)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.at, at)
		})
	}
}
