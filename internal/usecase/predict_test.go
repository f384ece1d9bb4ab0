package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/registry"
	applogger "StockPilot/pkg/logger"
)

func trainedRegistry(t *testing.T, ticker string, provider *fakeBarProvider) *registry.Registry {
	t.Helper()
	reg := newTestRegistry()
	trainer := NewTrainer(provider, reg, nil, nil, applogger.Nop(), 3)
	if reports := trainer.TrainTickers(context.Background(), []string{ticker}, 1); len(reports) != 1 {
		t.Fatalf("fixture training failed for %s", ticker)
	}
	return reg
}

func TestPredictNoModel(t *testing.T) {
	provider := &fakeBarProvider{bars: map[string][]models.Bar{}}
	p := NewPredictor(provider, newTestRegistry(), nil, 0, nil, applogger.Nop())

	pred := p.Predict(context.Background(), "AAPL")
	if pred.Available() {
		t.Fatalf("prediction available without a model: %+v", pred)
	}
	if pred.Class != models.ClassUnavailable {
		t.Fatalf("class %d, want %d", pred.Class, models.ClassUnavailable)
	}
}

func TestPredict(t *testing.T) {
	provider := &fakeBarProvider{bars: map[string][]models.Bar{"AAPL": trendBars(400)}}
	reg := trainedRegistry(t, "AAPL", provider)
	cache := newFakeCache()
	p := NewPredictor(provider, reg, cache, time.Minute, nil, applogger.Nop())

	pred := p.Predict(context.Background(), "AAPL")
	if !pred.Available() {
		t.Fatalf("prediction unavailable with model and history: %+v", pred)
	}
	if pred.Ticker != "AAPL" {
		t.Fatalf("ticker %s", pred.Ticker)
	}
	if _, ok, _ := cache.Get(context.Background(), "prediction:AAPL"); !ok {
		t.Fatal("available prediction not cached")
	}
}

func TestPredictEmptyHistory(t *testing.T) {
	trainProvider := &fakeBarProvider{bars: map[string][]models.Bar{"AAPL": trendBars(400)}}
	reg := trainedRegistry(t, "AAPL", trainProvider)

	empty := &fakeBarProvider{bars: map[string][]models.Bar{}}
	p := NewPredictor(empty, reg, nil, 0, nil, applogger.Nop())

	if pred := p.Predict(context.Background(), "AAPL"); pred.Available() {
		t.Fatal("prediction available without history")
	}
}

func TestPredictCacheHit(t *testing.T) {
	provider := &fakeBarProvider{bars: map[string][]models.Bar{}}
	cache := newFakeCache()
	cached, _ := json.Marshal(models.Prediction{Ticker: "AAPL", Class: models.ClassUp})
	_ = cache.Set(context.Background(), "prediction:AAPL", cached, time.Minute)

	p := NewPredictor(provider, newTestRegistry(), cache, time.Minute, nil, applogger.Nop())
	pred := p.Predict(context.Background(), "AAPL")
	if pred.Class != models.ClassUp {
		t.Fatalf("class %d, want cached up", pred.Class)
	}
	if provider.calls != 0 {
		t.Fatalf("provider called %d times on a cache hit", provider.calls)
	}
}

func TestPredictUnavailableNotCached(t *testing.T) {
	provider := &fakeBarProvider{bars: map[string][]models.Bar{}}
	cache := newFakeCache()
	p := NewPredictor(provider, newTestRegistry(), cache, time.Minute, nil, applogger.Nop())

	_ = p.Predict(context.Background(), "AAPL")
	if _, ok, _ := cache.Get(context.Background(), "prediction:AAPL"); ok {
		t.Fatal("unavailable prediction was cached")
	}
}
