package risk

import (
	"fmt"
	"math"

	"StockPilot/internal/domain/models"
)

// Params are the sizing inputs for one proposed trade.
type Params struct {
	EntryPrice   float64
	Equity       float64
	RiskPerTrade float64
	ATRMultSL    float64
	ATRMultTP    float64
}

// Size computes the ATR-scaled stop-loss, take-profit and share count
// under the equity-at-risk constraint. Two caps bound the position: the
// dollar loss if the stop is hit stays within the per-trade risk budget,
// and the share count never exceeds what equity can buy. Shares truncate
// toward zero, never fractional.
//
// Each violated precondition is a distinct models.ErrInvalidRiskInput.
func Size(atr float64, p Params) (*models.RiskPlan, error) {
	if p.EntryPrice <= 0 {
		return nil, fmt.Errorf("%w: entry price must be positive, got %v", models.ErrInvalidRiskInput, p.EntryPrice)
	}
	if atr <= 0 {
		return nil, fmt.Errorf("%w: atr problem, got %v", models.ErrInvalidRiskInput, atr)
	}

	stopLoss := p.EntryPrice - p.ATRMultSL*atr
	if stopLoss <= 0 {
		return nil, fmt.Errorf("%w: computed stop loss %v is not positive", models.ErrInvalidRiskInput, stopLoss)
	}
	takeProfit := p.EntryPrice + p.ATRMultTP*atr

	dollarRisk := p.Equity * p.RiskPerTrade
	sharesByRisk := dollarRisk / (p.EntryPrice - stopLoss)
	sharesByEquity := p.Equity / p.EntryPrice
	shares := int(math.Floor(math.Min(sharesByRisk, sharesByEquity)))

	return &models.RiskPlan{
		EntryPrice:        p.EntryPrice,
		ATR:               atr,
		StopLoss:          stopLoss,
		TakeProfit:        takeProfit,
		RecommendedShares: shares,
		DollarRisk:        dollarRisk,
		RiskPerTrade:      p.RiskPerTrade,
	}, nil
}
