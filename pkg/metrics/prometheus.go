package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements domain service.Metrics using Prometheus.
type Recorder struct {
	predictions *prometheus.CounterVec
	inputPoints prometheus.Histogram
	errorsTotal *prometheus.CounterVec
	inference   *prometheus.HistogramVec
	outliers    prometheus.Counter
	queueWait   prometheus.Histogram
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder registered on reg. Collectors that are
// already registered there are reused.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nextworth_predictions_total",
				Help: "Total number of successful prediction requests",
			},
			[]string{"horizon"},
		),
		inputPoints: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nextworth_input_points",
				Help:    "Number of history points per prediction request",
				Buckets: []float64{3, 6, 12, 24, 60, 120, 250, 500, 1000},
			},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nextworth_errors_total",
				Help: "Total number of pipeline errors by kind",
			},
			[]string{"kind"},
		),
		inference: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nextworth_inference_duration_seconds",
				Help:    "Duration of forecaster calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"model"},
		),
		outliers: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "nextworth_outliers_detected_total",
				Help: "Total number of z-score outliers seen in submitted histories",
			},
		),
		queueWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nextworth_forecaster_queue_wait_seconds",
				Help:    "Time spent waiting for a free forecaster slot",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30, 60},
			},
		),
	}
	r.predictions = register(reg, r.predictions).(*prometheus.CounterVec)
	r.inputPoints = register(reg, r.inputPoints).(prometheus.Histogram)
	r.errorsTotal = register(reg, r.errorsTotal).(*prometheus.CounterVec)
	r.inference = register(reg, r.inference).(*prometheus.HistogramVec)
	r.outliers = register(reg, r.outliers).(prometheus.Counter)
	r.queueWait = register(reg, r.queueWait).(prometheus.Histogram)
	return r
}

func register(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

// RecordPrediction records a successful prediction for a horizon.
func (r *Recorder) RecordPrediction(horizon string, points int) {
	r.predictions.WithLabelValues(horizon).Inc()
	r.inputPoints.Observe(float64(points))
}

// RecordInference records forecaster latency in seconds.
func (r *Recorder) RecordInference(model string, seconds float64) {
	r.inference.WithLabelValues(model).Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordOutliers adds n detected outliers.
func (r *Recorder) RecordOutliers(n int) {
	r.outliers.Add(float64(n))
}

// ObserveQueueWait records time spent waiting for the forecaster.
func (r *Recorder) ObserveQueueWait(d time.Duration) {
	r.queueWait.Observe(d.Seconds())
}
