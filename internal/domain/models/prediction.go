package models

// Prediction classes. ClassUnavailable is a sentinel, not an error:
// predictions are advisory and must never abort a caller's request.
const (
	ClassDown        = 0
	ClassUp          = 1
	ClassUnavailable = -1
)

// Prediction is the ephemeral result of a directional model query.
type Prediction struct {
	Ticker string `json:"ticker"`
	Class  int    `json:"class"`
}

// Available reports whether the model produced a usable class.
func (p Prediction) Available() bool {
	return p.Class == ClassDown || p.Class == ClassUp
}

// Unavailable builds the degraded prediction for a ticker.
func Unavailable(ticker string) Prediction {
	return Prediction{Ticker: ticker, Class: ClassUnavailable}
}

// RiskPlan is a volatility-scaled position-sizing recommendation for a
// proposed trade. Computed per request, never persisted.
type RiskPlan struct {
	EntryPrice        float64 `json:"entry_price"`
	ATR               float64 `json:"atr"`
	StopLoss          float64 `json:"stop_loss"`
	TakeProfit        float64 `json:"take_profit"`
	RecommendedShares int     `json:"recommended_shares"`
	DollarRisk        float64 `json:"dollar_risk"`
	RiskPerTrade      float64 `json:"risk_per_trade"`
}
