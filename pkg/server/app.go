package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"NextWorth/internal/service/ratelimit"
	"NextWorth/pkg/config"
	xhttp "NextWorth/pkg/http"
	"NextWorth/pkg/http/middleware"
	pkgkafka "NextWorth/pkg/kafka"
	applogger "NextWorth/pkg/logger"
)

// logPublisher is what the error-log collector publishes through. It is
// closed on shutdown after the collector has flushed.
type logPublisher interface {
	applogger.Publisher
	Close() error
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	log         *applogger.Logger
	httpHandler xhttp.Handler
	limiter     ratelimit.Limiter
	publisher   logPublisher
	httpServer  *xhttp.Server
}

// New creates a new App instance with all dependencies. limiter and producer
// may be nil.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	h xhttp.Handler,
	limiter ratelimit.Limiter,
	producer *pkgkafka.Producer,
) *App {
	var pub logPublisher
	if producer != nil {
		pub = producer
	}
	return newApp(cfg, l, h, limiter, pub)
}

func newApp(cfg *config.Config, l *applogger.Logger, h xhttp.Handler, limiter ratelimit.Limiter, pub logPublisher) *App {
	a := &App{
		cfg:         cfg,
		log:         l,
		httpHandler: h,
		limiter:     limiter,
		publisher:   pub,
	}

	if cfg.Logging.Collector.Enabled && pub != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Logging.Collector.Interval,
			CountThreshold: cfg.Logging.Collector.CountThreshold,
			Topic:          cfg.Logging.Collector.Topic,
			Service:        applogger.DefaultService,
			Publisher:      pub,
		})
	}

	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(cfg.Metrics.Enabled, cfg.Metrics.Path),
		xhttp.WithLogger(l),
	}
	if limiter != nil {
		opts = append(opts, xhttp.WithMiddleware(middleware.RateLimit(limiter, l)))
	}
	a.httpServer = xhttp.NewServer(h, opts...)
	return a
}

// Server returns the HTTP server.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run serves until interrupted or until the listener fails, then shuts down.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.log.Info("starting service",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("forecaster", a.cfg.Forecaster.Type),
		applogger.Bool("rate_limit", a.limiter != nil),
		applogger.Bool("log_collector", a.publisher != nil),
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(a.httpServer.Serve)

	g.Go(func() error {
		<-gCtx.Done()
		a.log.Info("shutdown signal received")
		return a.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		a.log.Error("service stopped with error", applogger.Error(err))
		return err
	}
	return nil
}

// Shutdown gracefully stops all services.
func (a *App) Shutdown(ctx context.Context) error {
	a.log.Info("shutting down...")

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	// flush aggregated error logs before the producer goes away
	a.log.RemoveCollector()
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("log publisher close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
