package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"FairValue/internal/model"
)

// StaticFetcher returns fixed in-memory data for development and testing.
// Symbols without a quote are reported as not found.
type StaticFetcher struct {
	Quotes    map[string]*model.Quote
	Prices    map[string]model.PriceSeries
	Dividends map[string]model.DividendSeries
	Errors    map[string]error // returned for every call on that symbol

	mu    sync.Mutex
	calls []string
}

// NewStaticFetcher returns an empty StaticFetcher ready for population.
func NewStaticFetcher() *StaticFetcher {
	return &StaticFetcher{
		Quotes:    map[string]*model.Quote{},
		Prices:    map[string]model.PriceSeries{},
		Dividends: map[string]model.DividendSeries{},
		Errors:    map[string]error{},
	}
}

func (m *StaticFetcher) Name() string { return "static" }

func (m *StaticFetcher) lookup(call, symbol string) error {
	m.mu.Lock()
	m.calls = append(m.calls, call+" "+symbol)
	m.mu.Unlock()
	if err, ok := m.Errors[symbol]; ok {
		return err
	}
	if q, ok := m.Quotes[symbol]; !ok || q == nil {
		return fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	return nil
}

// Calls returns the fetches made so far as "kind SYMBOL" strings.
func (m *StaticFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *StaticFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if err := m.lookup("quote", symbol); err != nil {
		return nil, err
	}
	q := *m.Quotes[symbol]
	return &q, nil
}

func (m *StaticFetcher) FetchPrices(ctx context.Context, symbol, _ string) (model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if err := m.lookup("prices", symbol); err != nil {
		return nil, err
	}
	if prices, ok := m.Prices[symbol]; ok {
		return prices, nil
	}
	if q := m.Quotes[symbol]; q.Price != nil {
		return SyntheticCloses(*q.Price, 30, time.Now().UTC()), nil
	}
	return nil, nil
}

func (m *StaticFetcher) FetchDividends(ctx context.Context, symbol, _ string) (model.DividendSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if err := m.lookup("dividends", symbol); err != nil {
		return nil, err
	}
	return m.Dividends[symbol], nil
}

// SyntheticCloses generates count daily closes ending the day before end,
// drifting gently around basePrice.
func SyntheticCloses(basePrice float64, count int, end time.Time) model.PriceSeries {
	day := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	series := make(model.PriceSeries, count)
	for i := 0; i < count; i++ {
		series[i] = model.PricePoint{
			Date:  day.AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return series
}
