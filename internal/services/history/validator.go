// Package history validates submitted price histories and extracts the
// forecaster context from them.
package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"NextWorth/internal/domain/models"
)

// MinPoints is the smallest history the forecaster accepts as context.
const MinPoints = 3

// ValidationError describes why a history was rejected. Index is the offending
// point, or -1 when the history as a whole is invalid.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validate checks a history in one ordered pass and stops at the first problem.
// A nil return means the history is usable.
func Validate(points []models.HistoryPoint) error {
	if len(points) == 0 {
		return &ValidationError{Index: -1, Reason: "history cannot be empty"}
	}
	if len(points) < MinPoints {
		return &ValidationError{Index: -1, Reason: fmt.Sprintf("at least %d historical data points required", MinPoints)}
	}
	for i, p := range points {
		if len(p.Close) == 0 {
			return &ValidationError{Index: i, Reason: fmt.Sprintf("missing 'close' price at index %d", i)}
		}
		v, ok := parseClose(p.Close)
		if !ok {
			return &ValidationError{Index: i, Reason: fmt.Sprintf("invalid price type at index %d", i)}
		}
		if v <= 0 {
			return &ValidationError{Index: i, Reason: fmt.Sprintf("price must be positive at index %d", i)}
		}
	}
	return nil
}

// Extract returns the close prices and raw date strings in submission order.
// It assumes Validate has accepted points.
func Extract(points []models.HistoryPoint) (prices []float64, dates []string) {
	prices = make([]float64, 0, len(points))
	dates = make([]string, 0, len(points))
	for _, p := range points {
		v, _ := parseClose(p.Close)
		prices = append(prices, v)
		dates = append(dates, p.Date)
	}
	return prices, dates
}

// AllDated reports whether every point carries a date.
func AllDated(dates []string) bool {
	for _, d := range dates {
		if d == "" {
			return false
		}
	}
	return len(dates) > 0
}

// parseClose accepts only JSON numbers. Strings, booleans, null and containers
// are rejected, as are values that overflow float64.
func parseClose(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
