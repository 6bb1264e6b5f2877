//go:build wireinject
// +build wireinject

package di

import (
	"AstroEngine/pkg/config"
	"AstroEngine/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Computation core
		ProvideEphemerisProvider,
		ProvideAspectEngine,
		ProvideBalanceAnalyzer,
		ProvideTransitSearch,
		ProvideProgressionEngine,

		// Infrastructure
		ProvideChartArchive,
		ProvideEventPublisher,

		// Use cases
		ProvideChartUseCase,
		ProvideTransitUseCase,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
