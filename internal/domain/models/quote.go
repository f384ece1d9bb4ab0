package models

// Quote is a validated snapshot of a ticker's market state. Optional
// fields are pointers so that an absent value is distinguishable from a
// zero price.
type Quote struct {
	Symbol        string
	ShortName     string
	LongName      string
	CurrentPrice  *float64
	MarketPrice   *float64
	PreviousClose *float64
}

// Price resolves the quoted price through the fallback chain
// current -> regular market -> previous close. The last-resort fallback
// to the most recent historical close is the caller's job because it
// needs a history fetch.
func (q *Quote) Price() (float64, bool) {
	for _, p := range []*float64{q.CurrentPrice, q.MarketPrice, q.PreviousClose} {
		if p != nil && *p > 0 {
			return *p, true
		}
	}
	return 0, false
}

// CompanyName returns the best available display name for the ticker.
func (q *Quote) CompanyName() string {
	if q.LongName != "" {
		return q.LongName
	}
	if q.ShortName != "" {
		return q.ShortName
	}
	return q.Symbol
}

// TrackedStock is the per-ticker view kept by the tracker store and
// returned by the stocks API.
type TrackedStock struct {
	Ticker      string  `json:"name"`
	CompanyName string  `json:"companyName"`
	Price       float64 `json:"price"`
	Prediction  int     `json:"prediction"`
}
