package models

import (
	"errors"
	"fmt"
)

// Horizon is a human-facing forecast length token.
type Horizon string

const (
	Horizon3M Horizon = "3m"
	Horizon6M Horizon = "6m"
	Horizon1Y Horizon = "1y"
	Horizon2Y Horizon = "2y"
	Horizon5Y Horizon = "5y"
)

// ErrInvalidHorizon is returned for any token outside the supported set.
var ErrInvalidHorizon = errors.New("invalid horizon")

var horizonMonths = map[Horizon]int{
	Horizon3M: 3,
	Horizon6M: 6,
	Horizon1Y: 12,
	Horizon2Y: 24,
	Horizon5Y: 60,
}

// Horizons lists the supported tokens in ascending length.
func Horizons() []Horizon {
	return []Horizon{Horizon3M, Horizon6M, Horizon1Y, Horizon2Y, Horizon5Y}
}

// ResolveHorizon maps a token to its number of monthly periods. Matching is
// exact: "1Y" or " 1y" are rejected.
func ResolveHorizon(token string) (int, error) {
	n, ok := horizonMonths[Horizon(token)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidHorizon, token)
	}
	return n, nil
}
