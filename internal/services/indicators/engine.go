package indicators

import (
	"math"

	"StockPilot/internal/domain/models"
)

// Indicator windows. MACD uses a 19-period slow EMA; its signal line is
// the longest warm-up in the set, so it determines how many leading rows
// get dropped.
const (
	SMAWindow    = 20
	EMAWindow    = 20
	RSIWindow    = 14
	MACDFast     = 12
	MACDSlow     = 19
	MACDSignal   = 9
	ATRWindow    = 14
	LabelThreshold = 0.003 // next-bar close must gain more than 0.3%
)

// MinBars is the shortest input that can produce at least one usable row:
// the MACD signal warm-up plus the labeled row and the final unlabeled bar.
const MinBars = MACDSlow + MACDSignal + 1

// Compute derives the indicator columns and the direction label from an
// ordered daily bar sequence. Rows carrying any undefined value are
// dropped: the leading warm-up rows and the final bar, whose label needs
// the next close. ATR is the exception and backfills its own warm-up
// with the first valid value instead of dropping rows.
//
// A too-short input yields an empty slice; callers treat that as
// "no data", never as an error.
func Compute(bars []models.Bar) []models.IndicatorRow {
	n := len(bars)
	if n < MinBars {
		return nil
	}

	closes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
	}

	sma := rollingMean(closes, SMAWindow)
	ema := expMean(closes, EMAWindow)
	rsi := wilderRSI(closes, RSIWindow)
	macd, signal := macdLines(closes, MACDFast, MACDSlow, MACDSignal)
	atr := averageTrueRange(bars, ATRWindow)

	rows := make([]models.IndicatorRow, 0, n)
	for i := 0; i < n-1; i++ { // final bar has no label
		row := models.IndicatorRow{
			Bar:        bars[i],
			SMA:        sma[i],
			EMA:        ema[i],
			RSI:        rsi[i],
			MACD:       macd[i],
			MACDSignal: signal[i],
			ATR:        atr[i],
		}
		if anyNaN(row.SMA, row.EMA, row.RSI, row.MACD, row.MACDSignal, row.ATR) {
			continue
		}
		if (bars[i+1].Close/bars[i].Close - 1) > LabelThreshold {
			row.Target = models.ClassUp
		} else {
			row.Target = models.ClassDown
		}
		rows = append(rows, row)
	}
	return rows
}

// LatestATR returns the most recent ATR value for the sequence, or false
// when the input cannot produce one.
func LatestATR(bars []models.Bar) (float64, bool) {
	if len(bars) < ATRWindow {
		return 0, false
	}
	atr := averageTrueRange(bars, ATRWindow)
	v := atr[len(atr)-1]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// rollingMean computes a simple moving average; the first window-1
// entries are NaN.
func rollingMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// expMean computes an exponential moving average seeded at the first
// value with alpha = 2/(window+1). Entries before the warm-up are NaN so
// they get dropped like the SMA's.
func expMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(window+1)
	ema := values[0]
	for i := 1; i < len(values); i++ {
		ema = alpha*values[i] + (1-alpha)*ema
		if i >= window-1 {
			out[i] = ema
		}
	}
	return out
}

// wilderRSI computes the Wilder-smoothed relative strength index: the
// first average is a simple mean of the first `window` changes, then the
// recursive (n-1)/n blend.
func wilderRSI(closes []float64, window int) []float64 {
	out := nanSlice(len(closes))
	if len(closes) <= window {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= window; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)
	out[window] = rsiValue(avgGain, avgLoss)

	for i := window + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// macdLines computes the MACD line (fast EMA minus slow EMA) and its
// signal EMA. The signal warm-up starts where the MACD line becomes
// defined, so the line is NaN before slow-1 and the signal before
// slow+signal-2.
func macdLines(closes []float64, fast, slow, signal int) ([]float64, []float64) {
	fastEMA := expMean(closes, fast)
	slowEMA := expMean(closes, slow)

	macd := nanSlice(len(closes))
	for i := range closes {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			macd[i] = fastEMA[i] - slowEMA[i]
		}
	}

	sig := nanSlice(len(closes))
	alpha := 2.0 / float64(signal+1)
	started := false
	var ema float64
	count := 0
	for i, v := range macd {
		if math.IsNaN(v) {
			continue
		}
		if !started {
			ema = v
			started = true
		} else {
			ema = alpha*v + (1-alpha)*ema
		}
		count++
		if count >= signal {
			sig[i] = ema
		}
	}
	return macd, sig
}

// averageTrueRange computes the Wilder-smoothed ATR. The warm-up rows
// are filled with the first valid value rather than dropped, so callers
// always see a full-length, NaN-free series once enough bars exist.
func averageTrueRange(bars []models.Bar, window int) []float64 {
	n := len(bars)
	out := nanSlice(n)
	if n < window {
		return out
	}

	tr := make([]float64, n)
	for i, b := range bars {
		if i == 0 {
			tr[i] = b.High - b.Low
			continue
		}
		prevClose := bars[i-1].Close
		tr[i] = math.Max(b.High-b.Low,
			math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
	}

	sum := 0.0
	for i := 0; i < window; i++ {
		sum += tr[i]
	}
	atr := sum / float64(window)
	out[window-1] = atr
	for i := window; i < n; i++ {
		atr = (atr*float64(window-1) + tr[i]) / float64(window)
		out[i] = atr
	}
	// backfill the warm-up with the first valid value
	for i := 0; i < window-1; i++ {
		out[i] = out[window-1]
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func anyNaN(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
