package model

import "time"

// Quote is a point-in-time snapshot of a symbol. Any numeric field may be nil
// when the data provider has no value for it.
type Quote struct {
	Ticker        string   `json:"ticker"`
	Price         *float64 `json:"price,omitempty"`
	PreviousClose *float64 `json:"previous_close,omitempty"`
	EPSTrailing   *float64 `json:"eps_trailing,omitempty"`
	PETrailing    *float64 `json:"pe_trailing,omitempty"`
	PEForward     *float64 `json:"pe_forward,omitempty"`
	Beta          *float64 `json:"beta,omitempty"`
	DividendRate  *float64 `json:"dividend_rate,omitempty"`
	LongName      string   `json:"long_name,omitempty"`
}

// PricePoint is a single daily close.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries holds closes in ascending date order with no duplicate dates.
type PriceSeries []PricePoint

// Closes returns the close values in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// Last returns the most recent close, or nil for an empty series.
func (s PriceSeries) Last() *float64 {
	if len(s) == 0 {
		return nil
	}
	v := s[len(s)-1].Close
	return &v
}

// DividendEvent is a single cash dividend payment.
type DividendEvent struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// DividendSeries holds dividend events in ascending date order.
type DividendSeries []DividendEvent

// AnnualPoint is one calendar year of a resampled series.
type AnnualPoint struct {
	Year  int
	Value float64
}

// AnnualSeries is a series resampled to calendar years, ascending by year.
type AnnualSeries []AnnualPoint

// Values returns the yearly values in order.
func (s AnnualSeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// MarketInputs is everything gathered for one valuation request. Each piece
// that could not be fetched is left empty and its cause kept alongside.
type MarketInputs struct {
	Ticker string

	Quote    *Quote
	QuoteErr error

	Dividends    DividendSeries
	DividendsErr error

	RecentPrices    PriceSeries
	RecentPricesErr error

	TreasuryQuote    *Quote
	TreasuryQuoteErr error

	IndexPrices    PriceSeries
	IndexPricesErr error

	FetchedAt time.Time
}
