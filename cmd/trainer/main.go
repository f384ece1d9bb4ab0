package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"StockPilot/internal/di"
	"StockPilot/internal/usecase"
	"StockPilot/pkg/config"
)

// Batch trainer: trains models for a ticker list directly, without the
// API server or the job queue. Meant for seeding and cron runs.
func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	tickersFlag := flag.String("tickers", "", "comma separated tickers (default: training.tickers from config)")
	years := flag.Int("years", 0, "history years to train on (default: training.default_years)")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	tickers := cfg.Training.Tickers
	if *tickersFlag != "" {
		tickers = strings.Split(*tickersFlag, ",")
	}
	if len(tickers) == 0 {
		log.Fatal("no tickers: pass -tickers or set training.tickers")
	}

	trainer, cleanup, err := buildTrainer(cfg)
	if err != nil {
		log.Fatalf("trainer initialization failed: %v", err)
	}
	defer cleanup()

	reports := trainer.TrainTickers(context.Background(), tickers, *years)
	for _, r := range reports {
		log.Printf("trained %s: rows=%d train=%.4f val=%.4f", r.Ticker, r.Rows, r.TrainScore, r.ValScore)
	}
	if len(reports) < len(tickers) {
		log.Printf("skipped %d of %d tickers", len(tickers)-len(reports), len(tickers))
		os.Exit(1)
	}
}

func buildTrainer(cfg *config.Config) (*usecase.Trainer, func(), error) {
	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	metrics := di.ProvideMetrics()

	client := di.ProvideProviderClient(cfg)
	bars := di.ProvideBarProvider(client)

	db, err := di.ProvidePostgres(cfg)
	if err != nil {
		return nil, nil, err
	}
	meta, err := di.ProvideMetadataStore(db)
	if err != nil {
		return nil, nil, err
	}
	blobs, err := di.ProvideBlobStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	reg := di.ProvideRegistry(blobs, meta, logger)

	chClient, err := di.ProvideClickHouseClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	archive := di.ProvideBarArchive(chClient, cfg)

	cleanup := func() {
		if chClient != nil {
			_ = chClient.Close()
		}
	}
	return di.ProvideTrainer(bars, reg, archive, metrics, logger, cfg), cleanup, nil
}
