package yahoo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"StockPilot/internal/domain/models"
	xhttp "StockPilot/pkg/http"
	"StockPilot/pkg/util"
)

// Client fetches daily OHLCV history and quote snapshots from a
// Yahoo-compatible chart API. It implements both BarProvider and
// QuoteProvider.
type Client struct {
	chartURL string
	quoteURL string
	client   *xhttp.Client
}

// New creates a provider client. chartURL and quoteURL are the base
// endpoints without the ticker path/query.
func New(chartURL, quoteURL string, timeout time.Duration) *Client {
	return &Client{
		chartURL: chartURL,
		quoteURL: quoteURL,
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns the daily bars between from and to, oldest first.
// Unknown tickers and empty periods yield an empty slice, not an error;
// days the provider reports with null fields are skipped.
func (c *Client) History(ctx context.Context, ticker string, from, to time.Time) ([]models.Bar, error) {
	var cr chartResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", c.chartURL, ticker),
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(from.Unix(), 10)},
			"period2":  {strconv.FormatInt(to.Unix(), 10)},
			"interval": {"1d"},
			"events":   {"history"},
		},
	}, &cr)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", ticker, err)
	}
	if cr.Chart.Error != nil || len(cr.Chart.Result) == 0 {
		return nil, nil
	}

	result := cr.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]

	bars := make([]models.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		bar := models.Bar{
			Date:  util.TruncateToDay(time.Unix(ts, 0)),
			Open:  *quote.Open[i],
			High:  *quote.High[i],
			Low:   *quote.Low[i],
			Close: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string   `json:"symbol"`
			ShortName                  string   `json:"shortName"`
			LongName                   string   `json:"longName"`
			CurrentPrice               *float64 `json:"currentPrice"`
			RegularMarketPrice         *float64 `json:"regularMarketPrice"`
			RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Quote returns the current snapshot for a ticker, or an error when the
// provider does not answer for the symbol at all.
func (c *Client) Quote(ctx context.Context, ticker string) (*models.Quote, error) {
	var qr quoteResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.quoteURL,
		QueryParams: map[string][]string{
			"symbols": {ticker},
		},
	}, &qr)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", ticker, err)
	}
	if len(qr.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("quote %s: %w", ticker, models.ErrNoData)
	}

	r := qr.QuoteResponse.Result[0]
	return &models.Quote{
		Symbol:        r.Symbol,
		ShortName:     r.ShortName,
		LongName:      r.LongName,
		CurrentPrice:  r.CurrentPrice,
		MarketPrice:   r.RegularMarketPrice,
		PreviousClose: r.RegularMarketPreviousClose,
	}, nil
}
