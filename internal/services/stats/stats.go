// Package stats holds the numeric helpers used around the forecaster:
// descriptive statistics, min-max scaling, z-score outliers and date ordering.
package stats

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"NextWorth/internal/domain/models"
	"NextWorth/pkg/util"
)

// DefaultOutlierThreshold is the z-score above which a value is an outlier.
const DefaultOutlierThreshold = 3.0

// Describe computes mean, population standard deviation, min, max and median.
// An empty input yields the zero summary.
func Describe(prices []float64) models.Statistics {
	if len(prices) == 0 {
		return models.Statistics{}
	}
	mean, std := stat.PopMeanStdDev(prices, nil)
	return models.Statistics{
		Mean:   mean,
		Std:    std,
		Min:    floats.Min(prices),
		Max:    floats.Max(prices),
		Median: Median(prices),
		Count:  len(prices),
	}
}

// Median returns the middle value, averaging the two central values for even
// lengths. The input is not modified.
func Median(prices []float64) float64 {
	n := len(prices)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Normalize applies min-max scaling into [0, 1]. A constant series is returned
// unchanged with min == max.
func Normalize(prices []float64) (normalized []float64, lo, hi float64) {
	if len(prices) == 0 {
		return nil, 0, 0
	}
	lo, hi = floats.Min(prices), floats.Max(prices)
	normalized = append([]float64(nil), prices...)
	if lo == hi {
		return normalized, lo, hi
	}
	span := hi - lo
	for i := range normalized {
		normalized[i] = (normalized[i] - lo) / span
	}
	return normalized, lo, hi
}

// Denormalize is the inverse of Normalize. When lo == hi it is the identity.
func Denormalize(normalized []float64, lo, hi float64) []float64 {
	out := append([]float64(nil), normalized...)
	if lo == hi {
		return out
	}
	span := hi - lo
	for i := range out {
		out[i] = out[i]*span + lo
	}
	return out
}

// DetectOutliers returns the indices whose |z-score| exceeds threshold.
// A constant series has no outliers.
func DetectOutliers(prices []float64, threshold float64) []int {
	out := []int{}
	if len(prices) == 0 {
		return out
	}
	mean, std := stat.PopMeanStdDev(prices, nil)
	if std == 0 {
		return out
	}
	for i, p := range prices {
		if math.Abs(p-mean)/std > threshold {
			out = append(out, i)
		}
	}
	return out
}

// CheckChronological reports whether the non-empty dates are strictly
// increasing. On failure it returns the index (into dates) of the first
// offending entry, which is either unparseable or not after its predecessor.
func CheckChronological(dates []string) (ok bool, at int) {
	var (
		prev    time.Time
		prevSet bool
	)
	for i, d := range dates {
		if d == "" {
			continue
		}
		t, parsed := util.ParseDate(d)
		if !parsed {
			return false, i
		}
		if prevSet && !t.After(prev) {
			return false, i
		}
		prev, prevSet = t, true
	}
	return true, -1
}
