// Package display renders optional report values as text. Absent values
// render as model.Unavailable.
package display

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"FairValue/internal/model"
)

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// Money renders v in currency with go-money. Unknown currencies, and amounts
// too large for go-money's int64 minor units, fall back to a plain number.
func Money(v *float64, currency string) string {
	if !finite(v) {
		return model.Unavailable
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return decimal.NewFromFloat(*v).StringFixed(2)
	}
	amount := decimal.NewFromFloat(*v).Round(int32(cur.Fraction))
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := amount.Mul(factor)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return amount.StringFixed(int32(cur.Fraction))
	}
	return money.New(minor.IntPart(), currency).Display()
}

// Rate renders a decimal rate as a percentage, 0.112 -> "11.20%".
func Rate(v *float64) string {
	if !finite(v) {
		return model.Unavailable
	}
	return decimal.NewFromFloat(*v).Shift(2).StringFixed(2) + "%"
}

// Number renders v with two decimals.
func Number(v *float64) string {
	if !finite(v) {
		return model.Unavailable
	}
	return decimal.NewFromFloat(*v).StringFixed(2)
}

// finite reports whether v is present and a real number.
func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
