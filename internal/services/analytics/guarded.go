package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	domsvc "NextWorth/internal/domain/service"
)

// GuardedForecaster bounds the number of concurrent calls into a forecaster.
// With a limit of 1 every call is serialized behind a single slot.
type GuardedForecaster struct {
	inner  domsvc.Forecaster
	sem    *semaphore.Weighted
	onWait func(time.Duration)
}

// GuardOption configures GuardedForecaster.
type GuardOption func(*GuardedForecaster)

// WithWaitObserver reports how long each call waited for a slot.
func WithWaitObserver(fn func(time.Duration)) GuardOption {
	return func(g *GuardedForecaster) {
		g.onWait = fn
	}
}

// NewGuardedForecaster wraps inner with at most limit concurrent calls. A
// limit below 1 is treated as 1.
func NewGuardedForecaster(inner domsvc.Forecaster, limit int, opts ...GuardOption) *GuardedForecaster {
	if limit < 1 {
		limit = 1
	}
	g := &GuardedForecaster{
		inner: inner,
		sem:   semaphore.NewWeighted(int64(limit)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Predict waits for a free slot, honouring ctx, then calls the wrapped forecaster.
func (g *GuardedForecaster) Predict(ctx context.Context, series []float64, horizon, samples int) ([]float64, error) {
	out, _, err := g.PredictTimed(ctx, series, horizon, samples)
	return out, err
}

// PredictTimed is Predict that also returns how long the wrapped forecaster
// ran. Time spent waiting for a slot is reported to the wait observer only.
func (g *GuardedForecaster) PredictTimed(ctx context.Context, series []float64, horizon, samples int) ([]float64, time.Duration, error) {
	queued := time.Now()
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, 0, fmt.Errorf("wait for forecaster slot: %w", err)
	}
	defer g.sem.Release(1)
	if g.onWait != nil {
		g.onWait(time.Since(queued))
	}

	start := time.Now()
	out, err := g.inner.Predict(ctx, series, horizon, samples)
	return out, time.Since(start), err
}

// Model returns the wrapped forecaster's model identifier.
func (g *GuardedForecaster) Model() string { return g.inner.Model() }

var _ domsvc.TimedForecaster = (*GuardedForecaster)(nil)
