package calculator

import (
	"errors"

	"github.com/markcheno/go-talib"
)

// CalculateSMA computes the trailing simple moving average of values over the
// given period. The result is aligned with values; entries before the first
// full window are zero.
func CalculateSMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(values) < period {
		return nil, errors.New("not enough data for SMA calculation")
	}
	return talib.Sma(values, period), nil
}

// LastSMA returns the most recent simple moving average of values. Only the
// trailing window is averaged, so values that left the window leave no
// rounding residue behind.
func LastSMA(values []float64, period int) (float64, error) {
	if _, err := CalculateSMA(values, period); err != nil {
		return 0, err
	}
	sma, err := CalculateSMA(values[len(values)-period:], period)
	if err != nil {
		return 0, err
	}
	return sma[period-1], nil
}
