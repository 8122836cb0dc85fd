package valuation

import (
	"time"

	"github.com/google/uuid"

	"FairValue/internal/calculator"
	"FairValue/internal/model"
)

// Options tunes Evaluate.
type Options struct {
	// BenchmarkPE replaces calculator.DefaultBenchmarkPE when the quote has
	// no forward P/E. Zero keeps the default.
	BenchmarkPE float64
	// RSIPeriod defaults to calculator.RSIPeriod when zero.
	RSIPeriod int
	// Now stamps the report; defaults to time.Now.
	Now func() time.Time
}

// Evaluate runs both valuation models and the momentum indicator over the
// collected inputs. It always returns a complete report; missing inputs
// surface as unavailable values and error notes inside it.
func Evaluate(in *model.MarketInputs, opts Options) *model.Report {
	q := in.Quote
	if q == nil {
		q = &model.Quote{Ticker: in.Ticker}
	}

	// Step a: benchmark rates
	rf := calculator.RiskFreeRate(in.TreasuryQuote)
	rm := calculator.MarketReturn(in.IndexPrices)

	// Step b: dividend discount model
	ddm := calculator.GordonGrowth(calculator.DDMInputs{
		Dividends:    in.Dividends,
		DividendRate: q.DividendRate,
		Beta:         q.Beta,
		RiskFreeRate: rf,
		MarketReturn: rm,
	})

	// Step c: relative valuation over the same recent closes as the RSI
	pe := calculator.RelativeValue(calculator.PEInputs{
		Prices:     in.RecentPrices,
		PricesErr:  in.RecentPricesErr,
		EPS:        q.EPSTrailing,
		TrailingPE: q.PETrailing,
		ForwardPE:  q.PEForward,
		FallbackPE: opts.BenchmarkPE,
	})

	period := opts.RSIPeriod
	if period <= 0 {
		period = calculator.RSIPeriod
	}
	pe.RSI = calculator.CalculateRSI(in.RecentPrices, period)

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	return &model.Report{
		ID:          uuid.New().String(),
		Ticker:      in.Ticker,
		LongName:    q.LongName,
		GeneratedAt: now().UTC(),
		DDM:         ddm,
		PE:          pe,
	}
}
