package usecase

import (
	"sort"
	"sync"

	"StockPilot/internal/domain/models"
)

// Tracker owns the set of tickers a client is watching. It is an
// explicitly injected store, not package state, so concurrent callers
// share nothing they did not ask for.
type Tracker struct {
	mu     sync.RWMutex
	stocks map[string]models.TrackedStock
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{stocks: make(map[string]models.TrackedStock)}
}

// Put inserts or replaces a tracked stock.
func (t *Tracker) Put(stock models.TrackedStock) {
	t.mu.Lock()
	t.stocks[stock.Ticker] = stock
	t.mu.Unlock()
}

// Get returns the tracked stock for a ticker.
func (t *Tracker) Get(ticker string) (models.TrackedStock, bool) {
	t.mu.RLock()
	s, ok := t.stocks[ticker]
	t.mu.RUnlock()
	return s, ok
}

// Remove drops a ticker; it reports whether the ticker was tracked.
func (t *Tracker) Remove(ticker string) bool {
	t.mu.Lock()
	_, ok := t.stocks[ticker]
	delete(t.stocks, ticker)
	t.mu.Unlock()
	return ok
}

// Clear drops every tracked ticker.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.stocks = make(map[string]models.TrackedStock)
	t.mu.Unlock()
}

// List returns the tracked stocks ordered by ticker.
func (t *Tracker) List() []models.TrackedStock {
	t.mu.RLock()
	out := make([]models.TrackedStock, 0, len(t.stocks))
	for _, s := range t.stocks {
		out = append(out, s)
	}
	t.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

// Tickers returns the tracked ticker symbols ordered alphabetically.
func (t *Tracker) Tickers() []string {
	list := t.List()
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Ticker
	}
	return out
}
