package usecase

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"NextWorth/internal/domain/models"
	domsvc "NextWorth/internal/domain/service"
	"NextWorth/internal/services/calendar"
	"NextWorth/internal/services/history"
	"NextWorth/internal/services/stats"
	applogger "NextWorth/pkg/logger"
)

const (
	// DefaultSampleCount is the number of sample paths requested per forecast.
	DefaultSampleCount = 10
	// PriceFloor is the smallest price ever returned to a caller.
	PriceFloor = 0.01
	// PricePrecision is the number of decimal places in returned prices.
	PricePrecision = 2
)

// OrchestratorOption configures ForecastOrchestrator.
type OrchestratorOption func(*ForecastOrchestrator)

// WithSampleCount overrides the per-request sample count.
func WithSampleCount(n int) OrchestratorOption {
	return func(o *ForecastOrchestrator) {
		if n > 0 {
			o.samples = n
		}
	}
}

// WithClock sets the clock used when the anchor date falls back to today.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *ForecastOrchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l *applogger.Logger) OrchestratorOption {
	return func(o *ForecastOrchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m domsvc.Metrics) OrchestratorOption {
	return func(o *ForecastOrchestrator) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithOutlierThreshold sets the z-score threshold used for diagnostics.
func WithOutlierThreshold(z float64) OrchestratorOption {
	return func(o *ForecastOrchestrator) {
		if z > 0 {
			o.outlierZ = z
		}
	}
}

// ForecastOrchestrator runs a prediction request end to end: validation,
// horizon resolution, one forecaster call, post-processing and date assignment.
// It holds no per-request state and is safe for concurrent use as long as the
// forecaster is.
type ForecastOrchestrator struct {
	forecaster domsvc.Forecaster
	metrics    domsvc.Metrics
	log        *applogger.Logger
	now        func() time.Time
	samples    int
	outlierZ   float64
}

// NewForecastOrchestrator creates an orchestrator around f.
func NewForecastOrchestrator(f domsvc.Forecaster, opts ...OrchestratorOption) *ForecastOrchestrator {
	o := &ForecastOrchestrator{
		forecaster: f,
		metrics:    nopMetrics{},
		log:        applogger.NewNop(),
		now:        time.Now,
		samples:    DefaultSampleCount,
		outlierZ:   stats.DefaultOutlierThreshold,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the prediction pipeline for req.
func (o *ForecastOrchestrator) Run(ctx context.Context, req models.PredictRequest) (*models.ForecastResponse, error) {
	log := o.log.With(
		applogger.String("symbol", req.Symbol),
		applogger.String("horizon", req.Horizon),
	)

	if err := history.Validate(req.History); err != nil {
		return nil, o.clientError(log, err)
	}
	periods, err := models.ResolveHorizon(req.Horizon)
	if err != nil {
		return nil, o.clientError(log, err)
	}

	prices, dates := history.Extract(req.History)
	if history.AllDated(dates) {
		if ok, at := stats.CheckChronological(dates); !ok {
			log.Warn("history dates not in chronological order",
				applogger.Int("index", at),
				applogger.String("date", dates[at]),
			)
		}
	}
	o.diagnose(log, prices)

	raw, elapsed, err := o.predict(ctx, prices, periods)
	o.metrics.RecordInference(o.forecaster.Model(), elapsed.Seconds())
	if err != nil {
		o.metrics.RecordError("forecaster")
		log.Error("forecaster failed",
			applogger.Error(err),
			applogger.String("model", o.forecaster.Model()),
			applogger.Int("context_len", len(prices)),
			applogger.Int("periods", periods),
			applogger.Duration("elapsed_ms", elapsed),
		)
		return nil, models.ForecasterError("prediction generation failed", err)
	}

	if len(raw) != periods {
		return nil, o.invariant(log, models.InvariantError(
			"forecaster returned %d values for %d periods", len(raw), periods))
	}
	for i, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			o.metrics.RecordError("forecaster")
			log.Error("forecaster returned a non-finite value",
				applogger.Int("index", i),
				applogger.String("model", o.forecaster.Model()),
			)
			return nil, models.ForecasterError("prediction generation failed", nil)
		}
	}
	values := PostProcess(raw)

	anchor, fellBack := calendar.ResolveAnchor(dates[len(dates)-1], o.now)
	if fellBack {
		log.Debug("anchor date missing or unparseable, using today",
			applogger.String("raw", dates[len(dates)-1]),
		)
	}
	future := calendar.Sequence(anchor, periods)
	if len(future) != len(values) {
		return nil, o.invariant(log, models.InvariantError(
			"date sequence has %d entries for %d predictions", len(future), len(values)))
	}

	predictions := make([]models.Prediction, len(values))
	for i := range values {
		predictions[i] = models.Prediction{Date: future[i], PredictedClose: values[i]}
	}

	o.metrics.RecordPrediction(req.Horizon, len(prices))
	log.Info("prediction generated",
		applogger.Int("input_points", len(prices)),
		applogger.Int("periods", periods),
		applogger.Duration("inference_ms", elapsed),
	)
	log.Debug("prediction values", applogger.Floats("predictions", values))

	return &models.ForecastResponse{
		Symbol:          req.Symbol,
		Horizon:         req.Horizon,
		Predictions:     predictions,
		ModelVersion:    o.forecaster.Model(),
		InferenceTimeMS: elapsed.Milliseconds(),
		InputDataPoints: len(prices),
		Currency:        req.Currency,
	}, nil
}

// Analyze validates a history and summarizes it without calling the forecaster.
func (o *ForecastOrchestrator) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	log := o.log.With(applogger.String("symbol", req.Symbol))

	if err := history.Validate(req.History); err != nil {
		return nil, o.clientError(log, err)
	}
	prices, dates := history.Extract(req.History)

	chronological := true
	if history.AllDated(dates) {
		chronological, _ = stats.CheckChronological(dates)
	}

	return &models.AnalyzeResponse{
		Symbol:        req.Symbol,
		Statistics:    stats.Describe(prices),
		Outliers:      stats.DetectOutliers(prices, o.outlierZ),
		Chronological: chronological,
	}, nil
}

// PostProcess floors every value at PriceFloor and rounds to PricePrecision
// decimal places, half away from zero.
func PostProcess(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = decimal.NewFromFloat(math.Max(v, PriceFloor)).Round(PricePrecision).InexactFloat64()
	}
	return out
}

func (o *ForecastOrchestrator) diagnose(log *applogger.Logger, prices []float64) {
	s := stats.Describe(prices)
	log.Debug("context statistics",
		applogger.Float64("mean", s.Mean),
		applogger.Float64("std", s.Std),
		applogger.Float64("min", s.Min),
		applogger.Float64("max", s.Max),
		applogger.Float64("median", s.Median),
		applogger.Int("count", s.Count),
	)
	if idx := stats.DetectOutliers(prices, o.outlierZ); len(idx) > 0 {
		o.metrics.RecordOutliers(len(idx))
		log.Warn("outliers in history", applogger.Ints("indices", idx))
	}
}

func (o *ForecastOrchestrator) clientError(log *applogger.Logger, err error) error {
	o.metrics.RecordError("client_input")
	log.Warn("rejected prediction input", applogger.Error(err))
	return models.ClientError(err.Error(), err)
}

func (o *ForecastOrchestrator) invariant(log *applogger.Logger, err *models.PipelineError) error {
	o.metrics.RecordError("invariant")
	log.Error("orchestration invariant violated",
		applogger.String("detail", err.Reason),
		applogger.String("model", o.forecaster.Model()),
	)
	return err
}

// predict calls the forecaster and reports how long inference took. Forecasters
// that queue calls report model time only, so a wait for a slot is not counted.
func (o *ForecastOrchestrator) predict(ctx context.Context, prices []float64, periods int) ([]float64, time.Duration, error) {
	if tf, ok := o.forecaster.(domsvc.TimedForecaster); ok {
		return tf.PredictTimed(ctx, prices, periods, o.samples)
	}
	start := time.Now()
	raw, err := o.forecaster.Predict(ctx, prices, periods, o.samples)
	return raw, time.Since(start), err
}

type nopMetrics struct{}

func (nopMetrics) RecordPrediction(string, int)    {}
func (nopMetrics) RecordInference(string, float64) {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordOutliers(int)              {}
