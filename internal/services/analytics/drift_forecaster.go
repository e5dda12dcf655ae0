package analytics

import (
	"context"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	domsvc "NextWorth/internal/domain/service"
	"NextWorth/internal/services/stats"
)

// DriftModel is the model identifier reported by DriftForecaster.
const DriftModel = "drift-baseline"

// DriftForecaster is an in-process baseline: a random walk with drift whose
// shocks are bootstrapped from the context's own residuals. It works on the
// min-max normalized series and reports the per-step median over samples.
//
// With a non-zero seed every call is deterministic. Each call owns its RNG, so
// the forecaster is safe for concurrent use.
type DriftForecaster struct {
	seed int64
}

// NewDriftForecaster creates a drift forecaster. seed 0 seeds from the clock.
func NewDriftForecaster(seed int64) *DriftForecaster {
	return &DriftForecaster{seed: seed}
}

// Predict returns horizon point forecasts.
func (f *DriftForecaster) Predict(ctx context.Context, series []float64, horizon, samples int) ([]float64, error) {
	if err := checkArgs(series, horizon, samples); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	norm, lo, hi := stats.Normalize(series)
	drift, residuals := decompose(norm)

	seed := f.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// paths[h][s] is the level of sample s at step h+1
	paths := make([][]float64, horizon)
	for h := range paths {
		paths[h] = make([]float64, samples)
	}
	last := norm[len(norm)-1]
	for s := 0; s < samples; s++ {
		level := last
		for h := 0; h < horizon; h++ {
			level += drift + residuals[rng.Intn(len(residuals))]
			paths[h][s] = level
		}
	}

	point := make([]float64, horizon)
	for h := range paths {
		point[h] = stats.Median(paths[h])
	}
	return stats.Denormalize(point, lo, hi), nil
}

// Model returns DriftModel.
func (f *DriftForecaster) Model() string { return DriftModel }

// decompose splits first differences into their mean and the centred residuals.
func decompose(norm []float64) (float64, []float64) {
	if len(norm) < 2 {
		return 0, []float64{0}
	}
	diffs := make([]float64, len(norm)-1)
	for i := 1; i < len(norm); i++ {
		diffs[i-1] = norm[i] - norm[i-1]
	}
	drift := stat.Mean(diffs, nil)
	for i := range diffs {
		diffs[i] -= drift
	}
	return drift, diffs
}

var _ domsvc.Forecaster = (*DriftForecaster)(nil)
