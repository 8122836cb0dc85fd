package calculator

import (
	"errors"
	"fmt"
	"math"

	"FairValue/internal/model"
)

var (
	ErrDividendsEmpty      = errors.New("dividends data is empty")
	ErrNextDividendMissing = errors.New("next dividend (D1) is unavailable; cannot project from dividend rate and growth")
	ErrCostOfEquityMissing = errors.New("cost of equity (r) is unavailable")
	ErrGrowthRateMissing   = errors.New("dividend growth rate (g) is unavailable")
	ErrCostBelowGrowth     = errors.New("cost of equity <= growth rate; invalid for DDM")
	ErrComputation         = errors.New("error in DDM calculation")
)

// DDMInputs are the raw inputs of the dividend discount model.
type DDMInputs struct {
	Dividends    model.DividendSeries
	DividendRate *float64 // annualised current dividend per share (D0)
	Beta         *float64
	RiskFreeRate *float64
	MarketReturn *float64
}

// GordonGrowth values a stock as D1 / (r - g). Checks run in a fixed order and
// the first failure is reported; every intermediate value computed so far is
// kept in the result either way.
func GordonGrowth(in DDMInputs) (res model.ValuationResult) {
	res = model.ValuationResult{
		RiskFreeRate: in.RiskFreeRate,
		MarketReturn: in.MarketReturn,
		Beta:         in.Beta,
	}
	defer func() {
		if p := recover(); p != nil {
			res.FairValue = nil
			res.Err = fmt.Errorf("%w: %v", ErrComputation, p)
		}
	}()

	res.GrowthRate = DividendGrowth(in.Dividends)
	res.NextDividend = NextDividend(in.DividendRate, res.GrowthRate)
	res.CostOfEquity = CostOfEquity(in.Beta, in.RiskFreeRate, in.MarketReturn)

	switch {
	case len(in.Dividends) == 0:
		res.Err = ErrDividendsEmpty
	case res.NextDividend == nil:
		res.Err = ErrNextDividendMissing
	case res.CostOfEquity == nil:
		res.Err = ErrCostOfEquityMissing
	case res.GrowthRate == nil:
		res.Err = ErrGrowthRateMissing
	case *res.CostOfEquity <= *res.GrowthRate:
		res.Err = ErrCostBelowGrowth
	}
	if res.Err != nil {
		return res
	}

	fv := *res.NextDividend / (*res.CostOfEquity - *res.GrowthRate)
	if math.IsNaN(fv) || math.IsInf(fv, 0) {
		res.Err = fmt.Errorf("%w: fair value is not finite", ErrComputation)
		return res
	}
	res.FairValue = &fv
	return res
}
