package di

import (
	"context"
	"fmt"
	"time"

	"StockPilot/internal/domain/repository"
	"StockPilot/internal/handler/api"
	"StockPilot/internal/registry"
	internalrepo "StockPilot/internal/repository"
	"StockPilot/internal/service/yahoo"
	"StockPilot/internal/usecase"
	pkgcache "StockPilot/pkg/cache"
	pkgch "StockPilot/pkg/clickhouse"
	"StockPilot/pkg/config"
	xhttp "StockPilot/pkg/http"
	pkgkafka "StockPilot/pkg/kafka"
	"StockPilot/pkg/logger"
	"StockPilot/pkg/metrics"
	"StockPilot/pkg/postgres"
	"StockPilot/pkg/server"

	"gorm.io/gorm"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideProviderClient creates the market data client. It serves both
// bar history and quote snapshots.
func ProvideProviderClient(cfg *config.Config) *yahoo.Client {
	return yahoo.New(cfg.Provider.ChartURL, cfg.Provider.QuoteURL, cfg.Provider.Timeout)
}

// ProvideBarProvider exposes the provider client as BarProvider.
func ProvideBarProvider(client *yahoo.Client) repository.BarProvider {
	return client
}

// ProvideQuoteProvider exposes the provider client as QuoteProvider.
func ProvideQuoteProvider(client *yahoo.Client) repository.QuoteProvider {
	return client
}

// ProvidePostgres opens the registry metadata database.
func ProvidePostgres(cfg *config.Config) (*gorm.DB, error) {
	db, err := postgres.NewDB(postgres.WithDSN(cfg.Models.PostgresDSN))
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return db, nil
}

// ProvideMetadataStore creates the gorm-backed registry metadata store.
func ProvideMetadataStore(db *gorm.DB) (repository.MetadataStore, error) {
	return internalrepo.NewGormMetadataStore(db)
}

// ProvideBlobStore creates the filesystem artifact store.
func ProvideBlobStore(cfg *config.Config) (repository.BlobStore, error) {
	return internalrepo.NewFSBlobStore(cfg.Models.Dir)
}

// ProvideRegistry creates the model registry.
func ProvideRegistry(blobs repository.BlobStore, meta repository.MetadataStore, l *logger.Logger) *registry.Registry {
	return registry.New(blobs, meta, l)
}

// ProvideClickHouseClient creates the bar archive database client, or
// nil when archiving is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, pkgch.BarsSchema(cfg.ClickHouse.BarsTable)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideBarArchive creates the ClickHouse bar archive, or nil when
// archiving is disabled.
func ProvideBarArchive(chClient *pkgch.Client, cfg *config.Config) repository.BarArchive {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseBarArchive(chClient.DB(), cfg.ClickHouse.BarsTable)
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideTrainingQueue creates the Kafka-backed training job queue.
func ProvideTrainingQueue(producer *pkgkafka.Producer, cfg *config.Config) repository.TrainingQueue {
	return internalrepo.NewKafkaTrainingQueue(producer, cfg.Kafka.TrainingTopic)
}

// ProvideKafkaConsumer creates the training job consumer.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideCache creates the prediction cache: Redis when enabled,
// in-process otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Store, error) {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	return pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Redis.Addr),
		pkgcache.WithRedisAuth(cfg.Redis.Password, cfg.Redis.DB),
	)
}

// ProvideTracker creates the tracked-stocks store.
func ProvideTracker() *usecase.Tracker {
	return usecase.NewTracker()
}

// ProvideTrainer creates the training pipeline.
func ProvideTrainer(
	bars repository.BarProvider,
	reg *registry.Registry,
	archive repository.BarArchive,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.Trainer {
	return usecase.NewTrainer(bars, reg, archive, m, l, cfg.Training.DefaultYears)
}

// ProvideTrainScheduler creates the training job scheduler.
func ProvideTrainScheduler(
	queue repository.TrainingQueue,
	reg *registry.Registry,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.TrainScheduler {
	return usecase.NewTrainScheduler(queue, reg, l, cfg.Training.DefaultYears)
}

// ProvideTrainingWorker creates the queue consumer handler.
func ProvideTrainingWorker(trainer *usecase.Trainer, cfg *config.Config, l *logger.Logger) *usecase.TrainingWorker {
	return usecase.NewTrainingWorker(trainer, cfg.Kafka.TrainingTopic, l)
}

// ProvidePredictor creates the prediction service.
func ProvidePredictor(
	bars repository.BarProvider,
	reg *registry.Registry,
	cache pkgcache.Store,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.Predictor {
	return usecase.NewPredictor(bars, reg, cache, cfg.Prediction.CacheTTL, m, l)
}

// ProvideRiskPlanner creates the risk sizing use case.
func ProvideRiskPlanner(bars repository.BarProvider, m repository.Metrics, l *logger.Logger) *usecase.RiskPlanner {
	return usecase.NewRiskPlanner(bars, m, l)
}

// ProvideStocks creates the tracked-stocks use case.
func ProvideStocks(
	quotes repository.QuoteProvider,
	bars repository.BarProvider,
	predictor *usecase.Predictor,
	tracker *usecase.Tracker,
	reg *registry.Registry,
	scheduler *usecase.TrainScheduler,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.Stocks {
	return usecase.NewStocks(quotes, bars, predictor, tracker, reg, scheduler, m, l)
}

// ProvideAPIHandler creates the HTTP API handler.
func ProvideAPIHandler(
	l *logger.Logger,
	stocks *usecase.Stocks,
	risk *usecase.RiskPlanner,
	scheduler *usecase.TrainScheduler,
) xhttp.Handler {
	return api.NewHandler(l, stocks, risk, scheduler)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	worker *usecase.TrainingWorker,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, l, handler, consumer, worker, producer, chClient)
}
