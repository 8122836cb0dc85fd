package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds x to two decimal places, halves away from zero. NaN and
// infinities are returned unchanged.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}
