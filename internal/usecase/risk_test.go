package usecase

import (
	"context"
	"errors"
	"testing"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/services/risk"
	applogger "StockPilot/pkg/logger"
)

func TestRiskPlan(t *testing.T) {
	bars := &fakeBarProvider{bars: map[string][]models.Bar{"AAPL": trendBars(60)}}
	planner := NewRiskPlanner(bars, nil, applogger.Nop())

	plan, err := planner.Plan(context.Background(), "AAPL", risk.Params{
		EntryPrice:   150,
		Equity:       100000,
		RiskPerTrade: 0.01,
		ATRMultSL:    1.5,
		ATRMultTP:    3.0,
	})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan.ATR <= 0 {
		t.Fatalf("atr %v not positive", plan.ATR)
	}
	if plan.StopLoss >= plan.EntryPrice || plan.TakeProfit <= plan.EntryPrice {
		t.Fatalf("stop %v / take profit %v not bracketing entry %v", plan.StopLoss, plan.TakeProfit, plan.EntryPrice)
	}
	if plan.RecommendedShares <= 0 {
		t.Fatalf("shares %d", plan.RecommendedShares)
	}
}

func TestRiskPlanNoHistory(t *testing.T) {
	planner := NewRiskPlanner(&fakeBarProvider{bars: map[string][]models.Bar{}}, nil, applogger.Nop())
	_, err := planner.Plan(context.Background(), "AAPL", risk.Params{EntryPrice: 150})
	if !errors.Is(err, models.ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

func TestRiskPlanShortHistory(t *testing.T) {
	planner := NewRiskPlanner(&fakeBarProvider{bars: map[string][]models.Bar{"AAPL": trendBars(5)}}, nil, applogger.Nop())
	_, err := planner.Plan(context.Background(), "AAPL", risk.Params{EntryPrice: 150})
	if !errors.Is(err, models.ErrNoData) {
		t.Fatalf("want ErrNoData below warm-up, got %v", err)
	}
}

func TestRiskPlanBadEntrySkipsProvider(t *testing.T) {
	bars := &fakeBarProvider{bars: map[string][]models.Bar{}}
	planner := NewRiskPlanner(bars, nil, applogger.Nop())

	_, err := planner.Plan(context.Background(), "AAPL", risk.Params{EntryPrice: 0})
	if !errors.Is(err, models.ErrInvalidRiskInput) {
		t.Fatalf("want ErrInvalidRiskInput, got %v", err)
	}
	if bars.calls != 0 {
		t.Fatalf("provider called %d times for an invalid entry", bars.calls)
	}
}
