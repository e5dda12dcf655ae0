package di

import (
	"fmt"
	"time"

	domsvc "NextWorth/internal/domain/service"
	"NextWorth/internal/handler/api"
	"NextWorth/internal/service/ratelimit"
	"NextWorth/internal/services/analytics"
	"NextWorth/internal/usecase"
	"NextWorth/pkg/config"
	pkgkafka "NextWorth/pkg/kafka"
	applogger "NextWorth/pkg/logger"
	"NextWorth/pkg/metrics"
	"NextWorth/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cfg.Logging.Output,
		Service: applogger.DefaultService,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideKafkaProducer creates the log collector's Kafka producer. It returns
// nil when the collector is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Logging.Collector.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithClientID(applogger.DefaultService),
	)
	if err != nil {
		return nil, fmt.Errorf("log publisher: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideForecaster builds the configured forecaster behind the concurrency guard.
func ProvideForecaster(cfg *config.Config, l *applogger.Logger, rec *metrics.Recorder) domsvc.Forecaster {
	var inner domsvc.Forecaster
	switch cfg.Forecaster.Type {
	case "drift":
		inner = analytics.NewDriftForecaster(cfg.Forecaster.Seed)
	default:
		b := cfg.Forecaster.Breaker
		base := analytics.NewHTTPServiceBase("model-server", cfg.Forecaster.URL, cfg.Forecaster.Timeout, analytics.BreakerConfig{
			Enabled:     b.Enabled,
			MaxRequests: b.MaxRequests,
			Interval:    b.Interval,
			Timeout:     b.Timeout,
			ReadyToTrip: b.ReadyToTrip,
		}, l)
		inner = analytics.NewHTTPForecaster(base, cfg.Model.Name)
	}
	l.Info("forecaster ready",
		applogger.String("type", cfg.Forecaster.Type),
		applogger.String("model", inner.Model()),
		applogger.Int("max_concurrency", cfg.Forecaster.MaxConcurrency),
	)
	return analytics.NewGuardedForecaster(inner, cfg.Forecaster.MaxConcurrency,
		analytics.WithWaitObserver(rec.ObserveQueueWait),
	)
}

// ProvideOrchestrator creates the forecast pipeline.
func ProvideOrchestrator(cfg *config.Config, f domsvc.Forecaster, rec *metrics.Recorder, l *applogger.Logger) *usecase.ForecastOrchestrator {
	return usecase.NewForecastOrchestrator(f,
		usecase.WithSampleCount(cfg.Forecaster.SampleCount),
		usecase.WithMetrics(rec),
		usecase.WithLogger(l),
		usecase.WithClock(time.Now),
	)
}

// ProvidePredictionHandler creates the HTTP handler.
func ProvidePredictionHandler(cfg *config.Config, l *applogger.Logger, orch *usecase.ForecastOrchestrator, f domsvc.Forecaster) *api.PredictionEchoHandler {
	return api.NewPredictionEchoHandler(l, orch, api.ServiceInfo{
		Model:   f.Model(),
		Version: cfg.Model.Version,
	}, cfg.Server.RequestTimeout)
}

// ProvideRateLimiter creates the configured limiter, or nil when disabled.
func ProvideRateLimiter(cfg *config.Config) (ratelimit.Limiter, func(), error) {
	if !cfg.RateLimit.Enabled {
		return nil, func() {}, nil
	}
	switch cfg.RateLimit.Backend {
	case "redis":
		cli := ratelimit.NewRedisClient(ratelimit.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cleanup := func() { _ = cli.Close() }
		return ratelimit.NewRedisLimiter(cli, cfg.Redis.Prefix, cfg.RateLimit.Limit, cfg.RateLimit.Window), cleanup, nil
	case "memory":
		return ratelimit.NewMemoryLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimit.Backend)
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	h *api.PredictionEchoHandler,
	limiter ratelimit.Limiter,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, l, h, limiter, producer)
}
