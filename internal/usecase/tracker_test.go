package usecase

import (
	"testing"

	"StockPilot/internal/domain/models"
)

func TestTrackerPutGetRemove(t *testing.T) {
	tr := NewTracker()
	tr.Put(models.TrackedStock{Ticker: "AAPL", Price: 150})

	got, ok := tr.Get("AAPL")
	if !ok || got.Price != 150 {
		t.Fatalf("get AAPL = %+v, %v", got, ok)
	}

	tr.Put(models.TrackedStock{Ticker: "AAPL", Price: 151})
	got, _ = tr.Get("AAPL")
	if got.Price != 151 {
		t.Fatalf("put did not replace, price %v", got.Price)
	}

	if !tr.Remove("AAPL") {
		t.Fatal("remove reported untracked")
	}
	if tr.Remove("AAPL") {
		t.Fatal("second remove reported tracked")
	}
	if _, ok := tr.Get("AAPL"); ok {
		t.Fatal("AAPL still tracked after remove")
	}
}

func TestTrackerListSorted(t *testing.T) {
	tr := NewTracker()
	for _, ticker := range []string{"MSFT", "AAPL", "NVDA", "GOOG"} {
		tr.Put(models.TrackedStock{Ticker: ticker})
	}

	list := tr.List()
	want := []string{"AAPL", "GOOG", "MSFT", "NVDA"}
	if len(list) != len(want) {
		t.Fatalf("list size %d, want %d", len(list), len(want))
	}
	for i, s := range list {
		if s.Ticker != want[i] {
			t.Fatalf("list[%d] = %s, want %s", i, s.Ticker, want[i])
		}
	}

	tickers := tr.Tickers()
	for i := range want {
		if tickers[i] != want[i] {
			t.Fatalf("tickers[%d] = %s, want %s", i, tickers[i], want[i])
		}
	}
}

func TestTrackerClear(t *testing.T) {
	tr := NewTracker()
	tr.Put(models.TrackedStock{Ticker: "AAPL"})
	tr.Put(models.TrackedStock{Ticker: "MSFT"})
	tr.Clear()
	if len(tr.List()) != 0 {
		t.Fatal("tracker not empty after clear")
	}
}
