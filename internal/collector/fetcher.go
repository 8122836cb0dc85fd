package collector

import (
	"context"
	"errors"

	"FairValue/internal/model"
)

// Fetch failures are classified with these sentinels; use errors.Is.
var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrNetwork        = errors.New("network failure")
	ErrRateLimited    = errors.New("rate limited")
)

// BenchmarkFetcher supplies quotes and closing prices. It is all that is
// needed for benchmark instruments such as treasury yields and indices.
type BenchmarkFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	FetchPrices(ctx context.Context, symbol, period string) (model.PriceSeries, error)
	Name() string
}

// Fetcher is a full market data source for an equity.
type Fetcher interface {
	BenchmarkFetcher
	FetchDividends(ctx context.Context, symbol, period string) (model.DividendSeries, error)
}
