package calculator

import "FairValue/internal/model"

// RiskFreeRate converts a treasury yield quote, quoted in percentage points,
// into a decimal annual rate. The previous close stands in when there is no
// live price.
func RiskFreeRate(q *model.Quote) *float64 {
	if q == nil {
		return nil
	}
	yield := q.Price
	if yield == nil {
		yield = q.PreviousClose
	}
	if yield == nil {
		return nil
	}
	rate := *yield / 100
	return &rate
}

// NextDividend projects the next-period dividend D1 = D0 * (1+g).
// A missing or non-positive D0 makes the projection meaningless.
func NextDividend(d0, g *float64) *float64 {
	if d0 == nil || *d0 <= 0 || g == nil {
		return nil
	}
	d1 := *d0 * (1 + *g)
	return &d1
}

// CostOfEquity applies CAPM: rf + beta*(rm - rf).
func CostOfEquity(beta, rf, rm *float64) *float64 {
	if beta == nil || rf == nil || rm == nil {
		return nil
	}
	r := *rf + *beta*(*rm-*rf)
	return &r
}
