package calculator

import (
	"fmt"

	"FairValue/internal/model"
)

// DefaultBenchmarkPE stands in for the benchmark multiple when the provider
// has no forward P/E. It is a representative large-cap average.
const DefaultBenchmarkPE = 20.0

// InsufficientData is the fair-value note when EPS cannot support the model.
const InsufficientData = "Insufficient data to calculate fair value"

// PEInputs are the raw inputs of the P/E relative valuation.
type PEInputs struct {
	Prices     model.PriceSeries
	PricesErr  error
	EPS        *float64
	TrailingPE *float64
	ForwardPE  *float64
	FallbackPE float64 // zero means DefaultBenchmarkPE
}

// RelativeValue values a stock at benchmark P/E times EPS. Unlike the dividend
// discount model it substitutes defaults for missing multiples instead of
// giving up; only a missing price or a non-positive EPS stops it.
func RelativeValue(in PEInputs) model.PEValuationResult {
	price := in.Prices.Last()
	if in.PricesErr != nil || price == nil {
		note := "Price data unavailable"
		if in.PricesErr != nil {
			note = fmt.Sprintf("Error fetching price data: %v", in.PricesErr)
		}
		return model.PEValuationResult{
			FairValueNote: note,
			Verdict:       model.VerdictDataUnavailable,
		}
	}

	res := model.PEValuationResult{
		Price:     price,
		EPS:       in.EPS,
		CurrentPE: in.TrailingPE,
	}
	if res.CurrentPE == nil && in.EPS != nil && *in.EPS != 0 {
		pe := Round2(*price / *in.EPS)
		res.CurrentPE = &pe
	}

	benchmark := in.ForwardPE
	if benchmark == nil {
		fallback := in.FallbackPE
		if fallback <= 0 {
			fallback = DefaultBenchmarkPE
		}
		benchmark = &fallback
	}
	res.HistoricalPE = benchmark

	if in.EPS == nil || *in.EPS <= 0 {
		res.FairValueNote = InsufficientData
		res.Verdict = model.VerdictDataUnavailable
		return res
	}

	fv := Round2(*benchmark * *in.EPS)
	res.FairValue = &fv
	res.Verdict = CompareMultiples(res.CurrentPE, res.HistoricalPE)
	return res
}

// CompareMultiples judges a current multiple against a benchmark multiple.
func CompareMultiples(current, benchmark *float64) model.Verdict {
	if current == nil || benchmark == nil {
		return model.VerdictDataUnavailable
	}
	switch {
	case *current > *benchmark:
		return model.VerdictOvervalued
	case *current < *benchmark:
		return model.VerdictUndervalued
	default:
		return model.VerdictFairlyValued
	}
}
