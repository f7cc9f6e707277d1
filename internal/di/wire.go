//go:build wireinject
// +build wireinject

package di

import (
	"IndexBoard/pkg/config"
	"IndexBoard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideLocation,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideBarStore,
		ProvideBarPublisher,
		ProvideMarketSource,

		// Use cases
		ProvideChartUseCase,
		ProvideReturnsUseCase,
		ProvideProjectionUseCase,
		ProvideClockUseCase,
		ProvideRefresher,

		// Transport and lifecycle
		ProvideScheduler,
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
