package models

// HTTP request bodies and query bindings. Transport-agnostic validation
// tags only; echo binding and validator live in pkg/http.

// AddStockRequest adds a ticker to the tracked set.
type AddStockRequest struct {
	Ticker string `json:"ticker" validate:"required,min=1,max=10"`
}

// TrainRequest triggers model training for one or more tickers.
type TrainRequest struct {
	Tickers   []string `json:"tickers" validate:"required,min=1,dive,min=1,max=10"`
	YearsBack int      `json:"years_back" default:"3" validate:"gte=1,lte=10"`
}

// HistoryRequest selects the chart window for a ticker.
type HistoryRequest struct {
	Period string `query:"period" default:"3mo" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
}

// RiskRequest carries the position-sizing inputs.
type RiskRequest struct {
	EntryPrice   float64 `query:"entry_price" validate:"required"`
	Equity       float64 `query:"equity" default:"100000" validate:"gt=0"`
	RiskPerTrade float64 `query:"risk_per_trade" default:"0.01" validate:"gt=0,lte=1"`
	ATRMultSL    float64 `query:"atr_mult_sl" default:"1.5" validate:"gt=0"`
	ATRMultTP    float64 `query:"atr_mult_tp" default:"3.0" validate:"gt=0"`
}
