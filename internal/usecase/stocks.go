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

// periodDays maps the chart window names accepted by the history
// endpoint to calendar days.
var periodDays = map[string]int{
	"1mo": 30,
	"3mo": 91,
	"6mo": 182,
	"1y":  365,
	"2y":  730,
	"5y":  1825,
}

// Stocks is the tracked-stocks use case: it resolves quotes, attaches
// predictions, keeps the tracker in sync and schedules training for
// tickers that have no model yet.
type Stocks struct {
	quotes    domrepo.QuoteProvider
	bars      domrepo.BarProvider
	predictor *Predictor
	tracker   *Tracker
	registry  *registry.Registry
	scheduler *TrainScheduler
	metrics   domrepo.Metrics
	logger    *applogger.Logger
}

// NewStocks wires the stocks use case. scheduler may be nil, in which
// case untrained tickers are tracked without scheduling a job.
func NewStocks(
	quotes domrepo.QuoteProvider,
	bars domrepo.BarProvider,
	predictor *Predictor,
	tracker *Tracker,
	reg *registry.Registry,
	scheduler *TrainScheduler,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *Stocks {
	return &Stocks{
		quotes:    quotes,
		bars:      bars,
		predictor: predictor,
		tracker:   tracker,
		registry:  reg,
		scheduler: scheduler,
		metrics:   metrics,
		logger:    logger,
	}
}

// Add validates the ticker against the quote source, schedules training
// when no model exists yet, and tracks the stock with a fresh price and
// prediction.
func (s *Stocks) Add(ctx context.Context, ticker string) (*models.TrackedStock, error) {
	ticker = normalizeTicker(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("%w: empty ticker", models.ErrNoData)
	}

	stock, err := s.lookup(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if !s.registry.Has(ctx, ticker) {
		s.scheduleTraining(ctx, ticker)
	}

	s.tracker.Put(*stock)
	return stock, nil
}

// Get resolves the current state of a single ticker. Tracked tickers get
// their stored entry updated in place.
func (s *Stocks) Get(ctx context.Context, ticker string) (*models.TrackedStock, error) {
	ticker = normalizeTicker(ticker)
	stock, err := s.lookup(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if _, tracked := s.tracker.Get(ticker); tracked {
		s.tracker.Put(*stock)
	}
	return stock, nil
}

// List returns the tracked stocks as last refreshed, ordered by ticker.
func (s *Stocks) List() []models.TrackedStock {
	return s.tracker.List()
}

// Remove untracks a ticker; it reports whether the ticker was tracked.
func (s *Stocks) Remove(ticker string) bool {
	return s.tracker.Remove(normalizeTicker(ticker))
}

// RemoveAll untracks every ticker.
func (s *Stocks) RemoveAll() {
	s.tracker.Clear()
}

// Refresh re-resolves price and prediction for every tracked ticker and
// returns the refreshed list. A ticker whose quote fails keeps its last
// known entry.
func (s *Stocks) Refresh(ctx context.Context) []models.TrackedStock {
	for _, ticker := range s.tracker.Tickers() {
		stock, err := s.lookup(ctx, ticker)
		if err != nil {
			s.logger.Warn("refresh kept stale entry",
				applogger.String("ticker", ticker),
				applogger.Error(err))
			continue
		}
		s.tracker.Put(*stock)
	}
	return s.tracker.List()
}

// History returns daily bars for the requested chart window. Unknown
// periods fall back to three months; an empty result is models.ErrNoData.
func (s *Stocks) History(ctx context.Context, ticker, period string) ([]models.Bar, error) {
	ticker = normalizeTicker(ticker)
	days, ok := periodDays[period]
	if !ok {
		days = periodDays["3mo"]
	}

	end := time.Now().UTC()
	bars, err := s.bars.History(ctx, ticker, end.AddDate(0, 0, -days), end)
	if s.metrics != nil {
		s.metrics.RecordProviderRequest("history", err)
	}
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoData, ticker)
	}
	return bars, nil
}

// HistoryRange returns daily bars for an explicit window.
func (s *Stocks) HistoryRange(ctx context.Context, ticker string, from, to time.Time) ([]models.Bar, error) {
	ticker = normalizeTicker(ticker)
	bars, err := s.bars.History(ctx, ticker, from, to)
	if s.metrics != nil {
		s.metrics.RecordProviderRequest("history", err)
	}
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoData, ticker)
	}
	return bars, nil
}

func (s *Stocks) lookup(ctx context.Context, ticker string) (*models.TrackedStock, error) {
	quote, err := s.quotes.Quote(ctx, ticker)
	if s.metrics != nil {
		s.metrics.RecordProviderRequest("quote", err)
	}
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", ticker, err)
	}

	price, ok := quote.Price()
	if !ok {
		price, ok = s.lastClose(ctx, ticker)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no usable price for %s", models.ErrNoData, ticker)
	}

	pred := s.predictor.Predict(ctx, ticker)
	return &models.TrackedStock{
		Ticker:      ticker,
		CompanyName: quote.CompanyName(),
		Price:       price,
		Prediction:  pred.Class,
	}, nil
}

// lastClose is the final step of the price fallback chain: the most
// recent close from a short history window.
func (s *Stocks) lastClose(ctx context.Context, ticker string) (float64, bool) {
	end := time.Now().UTC()
	bars, err := s.bars.History(ctx, ticker, end.AddDate(0, 0, -14), end)
	if err != nil || len(bars) == 0 {
		return 0, false
	}
	return bars[len(bars)-1].Close, true
}

func (s *Stocks) scheduleTraining(ctx context.Context, ticker string) {
	if s.scheduler == nil {
		return
	}
	if err := s.scheduler.Schedule(ctx, []string{ticker}, 0); err != nil {
		s.logger.Error("training enqueue failed",
			applogger.String("ticker", ticker),
			applogger.Error(err))
	}
}

func normalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}
