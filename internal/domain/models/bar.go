package models

import (
	"fmt"
	"time"
)

// Bar represents one daily OHLCV record for a ticker. Bars are immutable
// once fetched and always ordered by strictly increasing date.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// IndicatorRow extends a Bar with derived indicator columns and the
// next-bar direction label. Every derived column except Target depends
// only on bars at or before Date.
type IndicatorRow struct {
	Bar
	SMA        float64
	EMA        float64
	RSI        float64
	MACD       float64
	MACDSignal float64
	ATR        float64
	Target     int // 1 = next close up more than the label threshold, 0 otherwise
}

// Feature column names in the fixed training order. The same list is
// persisted with every model artifact so that inference selects columns
// in the exact order seen at training time.
const (
	ColSMA        = "sma"
	ColEMA        = "ema"
	ColRSI        = "rsi"
	ColMACD       = "macd"
	ColMACDSignal = "macd_signal"
)

// FeatureColumns returns the canonical ordered feature column list.
func FeatureColumns() []string {
	return []string{ColSMA, ColEMA, ColRSI, ColMACD, ColMACDSignal}
}

// FeatureVector selects the named columns from the row, in the given order.
func (r *IndicatorRow) FeatureVector(columns []string) ([]float64, error) {
	out := make([]float64, 0, len(columns))
	for _, col := range columns {
		switch col {
		case ColSMA:
			out = append(out, r.SMA)
		case ColEMA:
			out = append(out, r.EMA)
		case ColRSI:
			out = append(out, r.RSI)
		case ColMACD:
			out = append(out, r.MACD)
		case ColMACDSignal:
			out = append(out, r.MACDSignal)
		default:
			return nil, fmt.Errorf("unknown feature column %q", col)
		}
	}
	return out, nil
}
