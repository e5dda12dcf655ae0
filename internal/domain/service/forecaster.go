package service

import (
	"context"
	"time"
)

// Forecaster is the opaque forecasting capability. Predict returns one point
// estimate per period (len == horizon), aggregated over samples stochastic
// trajectories. Implementations may fail on malformed input or exhausted
// resources; callers must not retry.
type Forecaster interface {
	Predict(ctx context.Context, series []float64, horizon, samples int) ([]float64, error)
	// Model identifies the underlying model, e.g. "amazon/chronos-t5-small".
	Model() string
}

// TimedForecaster is implemented by forecasters that may hold a call before
// running it (for example behind a concurrency limit). PredictTimed reports the
// time spent in the model itself, excluding any such wait.
type TimedForecaster interface {
	Forecaster
	PredictTimed(ctx context.Context, series []float64, horizon, samples int) ([]float64, time.Duration, error)
}

// Metrics records pipeline observations.
type Metrics interface {
	RecordPrediction(horizon string, points int)
	RecordInference(model string, seconds float64)
	RecordError(kind string)
	RecordOutliers(n int)
}
