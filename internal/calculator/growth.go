package calculator

import "FairValue/internal/model"

// MarketReturn estimates the annualised market return as the geometric mean
// of year-over-year changes in the index's yearly last close.
func MarketReturn(index model.PriceSeries) *float64 {
	yearly := AnnualLastClose(index)
	if len(yearly) < 2 {
		return nil
	}
	return GeometricMeanReturn(PctChanges(yearly.Values()))
}

// DividendGrowth estimates the annual dividend growth rate as the geometric
// mean of year-over-year changes in total dividends paid.
func DividendGrowth(divs model.DividendSeries) *float64 {
	if len(divs) == 0 {
		return nil
	}
	yearly := AnnualSum(divs)
	if len(yearly) < 2 {
		return nil
	}
	return GeometricMeanReturn(PctChanges(yearly.Values()))
}
