package collector

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"FairValue/internal/model"
)

// Options names the benchmark symbols and history ranges used by Collect.
type Options struct {
	TreasurySymbol string
	IndexSymbol    string
	DividendPeriod string
	RecentPeriod   string
	IndexPeriod    string
	// SpotTimeout bounds the treasury quote fetch; zero means no extra bound.
	SpotTimeout time.Duration
}

// DefaultOptions returns the 10-year treasury yield and S&P 500 benchmarks.
func DefaultOptions() Options {
	return Options{
		TreasurySymbol: "^TNX",
		IndexSymbol:    "^GSPC",
		DividendPeriod: "max",
		RecentPeriod:   "1mo",
		IndexPeriod:    "10y",
		SpotTimeout:    10 * time.Second,
	}
}

// Collector gathers everything one valuation needs.
type Collector struct {
	Fetcher    Fetcher
	Benchmarks BenchmarkFetcher
	Options    Options
	log        zerolog.Logger
}

// NewCollector creates a new Collector. A nil benchmarks fetcher falls back
// to fetcher.
func NewCollector(fetcher Fetcher, benchmarks BenchmarkFetcher, opts Options, log zerolog.Logger) *Collector {
	if benchmarks == nil {
		benchmarks = fetcher
	}
	return &Collector{
		Fetcher:    fetcher,
		Benchmarks: benchmarks,
		Options:    opts,
		log:        log.With().Str("component", "collector").Logger(),
	}
}

// NormalizeTicker trims and upper-cases a user supplied ticker.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Collect fetches market data for ticker. It never fails: every fetch fault
// is logged and kept on the returned inputs next to the missing value.
func (c *Collector) Collect(ctx context.Context, ticker string) *model.MarketInputs {
	ticker = NormalizeTicker(ticker)
	in := &model.MarketInputs{Ticker: ticker}
	log := c.log.With().Str("ticker", ticker).Logger()

	if in.Quote, in.QuoteErr = c.Fetcher.FetchQuote(ctx, ticker); in.QuoteErr != nil {
		log.Warn().Err(in.QuoteErr).Msg("quote fetch failed, multiples unavailable")
		in.Quote = nil
	}

	if in.Dividends, in.DividendsErr = c.Fetcher.FetchDividends(ctx, ticker, c.Options.DividendPeriod); in.DividendsErr != nil {
		log.Warn().Err(in.DividendsErr).Msg("dividend history fetch failed, treating as empty")
		in.Dividends = nil
	}

	if in.RecentPrices, in.RecentPricesErr = c.Fetcher.FetchPrices(ctx, ticker, c.Options.RecentPeriod); in.RecentPricesErr != nil {
		log.Warn().Err(in.RecentPricesErr).Msg("recent price fetch failed, price and RSI unavailable")
		in.RecentPrices = nil
	}

	spotCtx := ctx
	if c.Options.SpotTimeout > 0 {
		var cancel context.CancelFunc
		spotCtx, cancel = context.WithTimeout(ctx, c.Options.SpotTimeout)
		defer cancel()
	}
	if in.TreasuryQuote, in.TreasuryQuoteErr = c.Benchmarks.FetchQuote(spotCtx, c.Options.TreasurySymbol); in.TreasuryQuoteErr != nil {
		log.Warn().Err(in.TreasuryQuoteErr).Str("symbol", c.Options.TreasurySymbol).Msg("treasury quote fetch failed, risk-free rate unavailable")
		in.TreasuryQuote = nil
	}

	if in.IndexPrices, in.IndexPricesErr = c.Benchmarks.FetchPrices(ctx, c.Options.IndexSymbol, c.Options.IndexPeriod); in.IndexPricesErr != nil {
		log.Warn().Err(in.IndexPricesErr).Str("symbol", c.Options.IndexSymbol).Msg("index history fetch failed, market return unavailable")
		in.IndexPrices = nil
	}

	in.FetchedAt = time.Now().UTC()
	log.Debug().
		Int("dividends", len(in.Dividends)).
		Int("recent_prices", len(in.RecentPrices)).
		Int("index_prices", len(in.IndexPrices)).
		Msg("collection finished")
	return in
}
