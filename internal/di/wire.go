//go:build wireinject
// +build wireinject

package di

import (
	"ShellWatch/pkg/config"
	"ShellWatch/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideObservationStore,
		ProvideAlertPublisher,

		// Use cases
		ProvideSnapshotBuilder,

		// Handlers
		ProvideShopHandler,
		ProvideWatchHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
