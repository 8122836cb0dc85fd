package calculator

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"FairValue/internal/model"
)

// AnnualLastClose resamples a price series to calendar years, keeping the last
// close of each year. Years without a close carry the previous year's value.
func AnnualLastClose(prices model.PriceSeries) model.AnnualSeries {
	if len(prices) == 0 {
		return nil
	}
	last := make(map[int]float64)
	for _, p := range prices {
		last[p.Date.Year()] = p.Close
	}
	first, final := prices[0].Date.Year(), prices[len(prices)-1].Date.Year()
	out := make(model.AnnualSeries, 0, final-first+1)
	var carry float64
	for y := first; y <= final; y++ {
		if v, ok := last[y]; ok {
			carry = v
		}
		out = append(out, model.AnnualPoint{Year: y, Value: carry})
	}
	return out
}

// AnnualSum resamples dividend events to calendar-year totals. Years between
// the first and last payment that had no payment are present with zero.
func AnnualSum(divs model.DividendSeries) model.AnnualSeries {
	if len(divs) == 0 {
		return nil
	}
	sums := make(map[int]float64)
	for _, d := range divs {
		sums[d.Date.Year()] += d.Amount
	}
	first, final := divs[0].Date.Year(), divs[len(divs)-1].Date.Year()
	out := make(model.AnnualSeries, 0, final-first+1)
	for y := first; y <= final; y++ {
		out = append(out, model.AnnualPoint{Year: y, Value: sums[y]})
	}
	return out
}

// PctChanges returns the period-over-period relative changes of values.
// A change from zero to zero is undefined and skipped; a change from zero to
// anything else is +Inf.
func PctChanges(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	changes := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev, cur := values[i-1], values[i]
		if prev == 0 {
			if cur == 0 {
				continue
			}
			changes = append(changes, math.Inf(1))
			continue
		}
		changes = append(changes, cur/prev-1)
	}
	return changes
}

// GeometricMeanReturn computes (Π(1+r_i))^(1/n) - 1. It returns nil for an
// empty input or a non-finite result.
func GeometricMeanReturn(returns []float64) *float64 {
	if len(returns) == 0 {
		return nil
	}
	factors := make([]float64, len(returns))
	for i, r := range returns {
		factors[i] = 1 + r
	}
	mean := math.Pow(floats.Prod(factors), 1/float64(len(factors))) - 1
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil
	}
	return &mean
}
