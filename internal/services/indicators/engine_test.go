package indicators

import (
	"math"
	"testing"
	"time"

	"StockPilot/internal/domain/models"
)

func makeBars(closes []float64) []models.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

// wigglyUptrend rises overall but alternates small pullbacks so both
// label classes occur.
func wigglyUptrend(n int) []float64 {
	closes := make([]float64, n)
	price := 100.0
	for i := 0; i < n; i++ {
		closes[i] = price
		if i%3 == 2 {
			price *= 0.999
		} else {
			price *= 1.008
		}
	}
	return closes
}

func TestComputeShortInput(t *testing.T) {
	bars := makeBars(wigglyUptrend(MinBars - 1))
	if rows := Compute(bars); rows != nil {
		t.Fatalf("expected nil for %d bars, got %d rows", len(bars), len(rows))
	}
	if rows := Compute(nil); rows != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestComputeWarmUp(t *testing.T) {
	closes := wigglyUptrend(60)
	bars := makeBars(closes)
	rows := Compute(bars)
	if len(rows) == 0 {
		t.Fatal("expected rows")
	}

	// the signal line is the longest warm-up: defined from index
	// slow+signal-2 onward
	firstUsable := MACDSlow + MACDSignal - 2
	if !rows[0].Date.Equal(bars[firstUsable].Date) {
		t.Fatalf("first row at %v, want %v", rows[0].Date, bars[firstUsable].Date)
	}

	// final bar has no label and must be dropped
	want := len(bars) - 1 - firstUsable
	if len(rows) != want {
		t.Fatalf("got %d rows, want %d", len(rows), want)
	}
	last := rows[len(rows)-1]
	if last.Date.Equal(bars[len(bars)-1].Date) {
		t.Fatal("final bar must not become a row")
	}
}

func TestComputeNoNaNs(t *testing.T) {
	rows := Compute(makeBars(wigglyUptrend(80)))
	for i, r := range rows {
		for _, v := range []float64{r.SMA, r.EMA, r.RSI, r.MACD, r.MACDSignal, r.ATR} {
			if math.IsNaN(v) {
				t.Fatalf("row %d carries NaN", i)
			}
		}
	}
}

func TestComputeRSIBounds(t *testing.T) {
	rows := Compute(makeBars(wigglyUptrend(80)))
	for i, r := range rows {
		if r.RSI < 0 || r.RSI > 100 {
			t.Fatalf("row %d RSI out of range: %v", i, r.RSI)
		}
	}
}

func TestComputeLabels(t *testing.T) {
	closes := wigglyUptrend(60)
	bars := makeBars(closes)
	rows := Compute(bars)

	byDate := make(map[time.Time]int, len(bars))
	for i := range bars {
		byDate[bars[i].Date] = i
	}

	ups := 0
	for _, r := range rows {
		i := byDate[r.Date]
		want := models.ClassDown
		if closes[i+1]/closes[i]-1 > LabelThreshold {
			want = models.ClassUp
		}
		if r.Target != want {
			t.Fatalf("row at %v: target %d, want %d", r.Date, r.Target, want)
		}
		if r.Target == models.ClassUp {
			ups++
		}
	}
	// the sequence trends up, so up labels should dominate
	if ups*2 <= len(rows) {
		t.Fatalf("expected mostly up labels, got %d of %d", ups, len(rows))
	}
	if ups == len(rows) {
		t.Fatal("expected both classes in a wiggly uptrend")
	}
}

func TestComputeFlatSeries(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}
	rows := Compute(makeBars(closes))
	for _, r := range rows {
		if r.Target != models.ClassDown {
			t.Fatalf("flat series must label down, got %d", r.Target)
		}
		if r.RSI != 50 {
			t.Fatalf("flat series RSI should be 50, got %v", r.RSI)
		}
	}
}

func TestLatestATR(t *testing.T) {
	if _, ok := LatestATR(makeBars(wigglyUptrend(5))); ok {
		t.Fatal("expected no ATR below the warm-up")
	}

	atr, ok := LatestATR(makeBars(wigglyUptrend(40)))
	if !ok {
		t.Fatal("expected an ATR value")
	}
	if atr <= 0 {
		t.Fatalf("expected positive ATR, got %v", atr)
	}
}

func TestLatestATRFlat(t *testing.T) {
	// a market with zero range has zero ATR; risk sizing rejects it later
	bars := make([]models.Bar, 30)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.Bar{Date: start.AddDate(0, 0, i), Open: 100, High: 100, Low: 100, Close: 100}
	}
	atr, ok := LatestATR(bars)
	if !ok {
		t.Fatal("expected a value")
	}
	if atr != 0 {
		t.Fatalf("expected zero ATR, got %v", atr)
	}
}
