//go:build wireinject
// +build wireinject

package di

import (
	"StockPilot/pkg/config"
	"StockPilot/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideProviderClient,
		ProvideBarProvider,
		ProvideQuoteProvider,
		ProvidePostgres,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCache,

		// Repositories
		ProvideMetadataStore,
		ProvideBlobStore,
		ProvideRegistry,
		ProvideBarArchive,
		ProvideTrainingQueue,

		// Use cases
		ProvideTracker,
		ProvideTrainer,
		ProvideTrainScheduler,
		ProvideTrainingWorker,
		ProvidePredictor,
		ProvideRiskPlanner,
		ProvideStocks,

		// HTTP and application server
		ProvideAPIHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
