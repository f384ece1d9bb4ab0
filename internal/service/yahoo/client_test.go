package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockPilot/internal/domain/models"
)

const chartBody = `{
  "chart": {
    "result": [{
      "timestamp": [1704153600, 1704240000, 1704326400],
      "indicators": {
        "quote": [{
          "open":   [184.0, null, 182.0],
          "high":   [186.0, 185.5, 183.5],
          "low":    [183.0, 183.5, 180.9],
          "close":  [185.5, 184.2, 181.2],
          "volume": [82000000, 58000000, 71000000]
        }]
      }
    }],
    "error": null
  }
}`

func TestHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("interval = %q, want 1d", got)
		}
		if r.URL.Path != "/AAPL" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, time.Second)
	bars, err := c.History(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	// the middle day has a null open and must be skipped
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if bars[0].Close != 185.5 || bars[1].Close != 181.2 {
		t.Fatalf("closes %v / %v wrong", bars[0].Close, bars[1].Close)
	}
	if bars[0].Volume != 82000000 {
		t.Fatalf("volume %v", bars[0].Volume)
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Fatal("bars not ordered oldest first")
	}
}

func TestHistoryProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, time.Second)
	bars, err := c.History(context.Background(), "NOPE", time.Now().AddDate(0, -1, 0), time.Now())
	if err != nil {
		t.Fatalf("provider-side error must not surface: %v", err)
	}
	if len(bars) != 0 {
		t.Fatalf("got %d bars for unknown ticker, want 0", len(bars))
	}
}

func TestHistoryEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, time.Second)
	bars, err := c.History(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	if err != nil || len(bars) != 0 {
		t.Fatalf("got %d bars, err %v", len(bars), err)
	}
}

func TestQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbols"); got != "AAPL" {
			t.Errorf("symbols = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"quoteResponse":{"result":[{
			"symbol":"AAPL","shortName":"Apple","longName":"Apple Inc.",
			"regularMarketPrice":187.5,"regularMarketPreviousClose":186.1}]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, time.Second)
	q, err := c.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.CompanyName() != "Apple Inc." {
		t.Fatalf("company name %q", q.CompanyName())
	}
	price, ok := q.Price()
	if !ok || price != 187.5 {
		t.Fatalf("price %v, %v", price, ok)
	}
	if q.CurrentPrice != nil {
		t.Fatal("currentPrice should be absent")
	}
}

func TestQuoteEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"quoteResponse":{"result":[]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, time.Second)
	if _, err := c.Quote(context.Background(), "NOPE"); !errors.Is(err, models.ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}
