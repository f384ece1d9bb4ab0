package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockPilot/internal/domain/models"
	domrepo "StockPilot/internal/domain/repository"
	"StockPilot/internal/registry"
	applogger "StockPilot/pkg/logger"
)

// TrainScheduler publishes training jobs to the queue and answers
// registry bookkeeping queries. The actual training happens in the
// worker consuming the topic.
type TrainScheduler struct {
	queue    domrepo.TrainingQueue
	registry *registry.Registry
	logger   *applogger.Logger

	defaultYears int
}

// NewTrainScheduler wires the scheduling side of the training pipeline.
func NewTrainScheduler(queue domrepo.TrainingQueue, reg *registry.Registry, logger *applogger.Logger, defaultYears int) *TrainScheduler {
	if defaultYears <= 0 {
		defaultYears = 3
	}
	return &TrainScheduler{queue: queue, registry: reg, logger: logger, defaultYears: defaultYears}
}

// Schedule enqueues one training job covering the given tickers.
func (s *TrainScheduler) Schedule(ctx context.Context, tickers []string, yearsBack int) error {
	cleaned := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("no tickers to schedule")
	}
	if yearsBack <= 0 {
		yearsBack = s.defaultYears
	}

	job := models.TrainingJob{
		Tickers:     cleaned,
		YearsBack:   yearsBack,
		RequestedAt: time.Now().UTC(),
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("enqueue training job: %w", err)
	}

	s.logger.Info("training scheduled",
		applogger.Strings("tickers", cleaned),
		applogger.Int("years_back", yearsBack))
	return nil
}

// ModelInfo returns the registry bookkeeping row for a ticker.
func (s *TrainScheduler) ModelInfo(ctx context.Context, ticker string) (*models.RegistryEntry, error) {
	return s.registry.Entry(ctx, strings.ToUpper(strings.TrimSpace(ticker)))
}
