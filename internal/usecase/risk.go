package usecase

import (
	"context"
	"fmt"
	"time"

	"StockPilot/internal/domain/models"
	domrepo "StockPilot/internal/domain/repository"
	"StockPilot/internal/services/indicators"
	"StockPilot/internal/services/risk"
	applogger "StockPilot/pkg/logger"
)

// RiskPlanner turns a proposed entry into a sized plan using the
// ticker's current volatility.
type RiskPlanner struct {
	provider domrepo.BarProvider
	metrics  domrepo.Metrics
	logger   *applogger.Logger
}

// NewRiskPlanner wires the risk sizing use case.
func NewRiskPlanner(provider domrepo.BarProvider, metrics domrepo.Metrics, logger *applogger.Logger) *RiskPlanner {
	return &RiskPlanner{provider: provider, metrics: metrics, logger: logger}
}

// Plan fetches a year of history, takes the latest ATR and sizes the
// position. An empty history is models.ErrNoData; precondition failures
// are models.ErrInvalidRiskInput with the violated condition.
func (r *RiskPlanner) Plan(ctx context.Context, ticker string, p risk.Params) (*models.RiskPlan, error) {
	// reject a bad entry before spending a provider call
	if p.EntryPrice <= 0 {
		return nil, fmt.Errorf("%w: entry price must be positive, got %v", models.ErrInvalidRiskInput, p.EntryPrice)
	}

	end := time.Now().UTC()
	bars, err := r.provider.History(ctx, ticker, end.AddDate(0, 0, -historyDays), end)
	if err != nil {
		if r.metrics != nil {
			r.metrics.RecordError("risk_history")
		}
		return nil, fmt.Errorf("history %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoData, ticker)
	}

	atr, ok := indicators.LatestATR(bars)
	if !ok {
		return nil, fmt.Errorf("%w: %s below ATR warm-up", models.ErrNoData, ticker)
	}

	plan, err := risk.Size(atr, p)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("risk plan computed",
		applogger.String("ticker", ticker),
		applogger.Any("shares", plan.RecommendedShares))
	return plan, nil
}
