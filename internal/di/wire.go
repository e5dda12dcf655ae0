//go:build wireinject
// +build wireinject

package di

import (
	"NextWorth/internal/usecase"
	"NextWorth/pkg/config"
	"NextWorth/pkg/server"

	"github.com/google/wire"
)

var pipelineSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideForecaster,
	ProvideOrchestrator,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		pipelineSet,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideRateLimiter,

		// HTTP
		ProvidePredictionHandler,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeOrchestrator wires the pipeline alone, for offline use.
func InitializeOrchestrator(cfg *config.Config) (*usecase.ForecastOrchestrator, error) {
	wire.Build(pipelineSet)
	return nil, nil
}
