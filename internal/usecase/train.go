package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockPilot/internal/domain/models"
	domrepo "StockPilot/internal/domain/repository"
	"StockPilot/internal/registry"
	"StockPilot/internal/services/dataset"
	"StockPilot/internal/services/ensemble"
	"StockPilot/internal/services/indicators"
	applogger "StockPilot/pkg/logger"
)

const dateLayout = "2006-01-02"

// Trainer runs the full per-ticker pipeline: fetch history, derive
// indicators, build the chronological split, fit the voting ensemble and
// store the artifact. One ticker's failure never aborts the batch.
type Trainer struct {
	provider domrepo.BarProvider
	registry *registry.Registry
	archive  domrepo.BarArchive
	metrics  domrepo.Metrics
	logger   *applogger.Logger

	defaultYears int
}

// NewTrainer wires the training pipeline. archive may be nil.
func NewTrainer(
	provider domrepo.BarProvider,
	reg *registry.Registry,
	archive domrepo.BarArchive,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	defaultYears int,
) *Trainer {
	if defaultYears <= 0 {
		defaultYears = 3
	}
	return &Trainer{
		provider:     provider,
		registry:     reg,
		archive:      archive,
		metrics:      metrics,
		logger:       logger,
		defaultYears: defaultYears,
	}
}

// TrainTickers trains a model for every ticker in the list and returns
// the reports for the ones that succeeded. Failures are logged and
// counted; the batch continues.
func (t *Trainer) TrainTickers(ctx context.Context, tickers []string, yearsBack int) []models.TrainingReport {
	if yearsBack <= 0 {
		yearsBack = t.defaultYears
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -365*yearsBack)

	reports := make([]models.TrainingReport, 0, len(tickers))
	for _, raw := range tickers {
		ticker := strings.ToUpper(strings.TrimSpace(raw))
		if ticker == "" {
			continue
		}
		began := time.Now()
		report, err := t.trainOne(ctx, ticker, start, end)
		if t.metrics != nil {
			t.metrics.RecordTraining(ticker, time.Since(began).Seconds(), err)
		}
		if err != nil {
			t.logger.Warn("training skipped",
				applogger.String("ticker", ticker),
				applogger.Error(err))
			continue
		}
		t.logger.Info("model trained",
			applogger.String("ticker", ticker),
			applogger.Int("rows", report.Rows),
			applogger.Any("val_score", report.ValScore))
		reports = append(reports, *report)
	}
	return reports
}

func (t *Trainer) trainOne(ctx context.Context, ticker string, start, end time.Time) (*models.TrainingReport, error) {
	bars, err := t.provider.History(ctx, ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: empty history for %s", models.ErrNoData, ticker)
	}

	if t.archive != nil {
		if err := t.archive.StoreBars(ctx, ticker, bars); err != nil {
			// archive is best-effort; training proceeds on the in-memory bars
			t.logger.Warn("bar archive failed",
				applogger.String("ticker", ticker),
				applogger.Error(err))
		}
	}

	rows := indicators.Compute(bars)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %d bars below warm-up for %s", models.ErrNoData, len(bars), ticker)
	}

	split, err := dataset.Build(rows)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	result, err := ensemble.Train(split)
	if err != nil {
		return nil, err
	}

	err = t.registry.Store(ctx, ticker, result,
		split.DataStart.Format(dateLayout), split.DataEnd.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	return &models.TrainingReport{
		Ticker:     ticker,
		TrainScore: result.TrainScore,
		ValScore:   result.ValScore,
		Rows:       result.Rows,
	}, nil
}
