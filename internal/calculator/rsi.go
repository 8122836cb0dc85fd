package calculator

import (
	"math"

	"FairValue/internal/model"
)

// RSIPeriod is the look-back window of the momentum indicator.
const RSIPeriod = 14

// rsiEpsilon is the magnitude below which an average move counts as none.
const rsiEpsilon = 1e-12

// CalculateRSI computes the relative strength index of the latest close using
// simple moving averages of gains and losses over period deltas. The reading
// is unavailable when there are fewer than period deltas.
func CalculateRSI(prices model.PriceSeries, period int) model.RSIReading {
	if period <= 0 || len(prices)-1 < period {
		return model.RSIReading{}
	}

	closes := prices.Closes()
	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	avgGain, err := LastSMA(gains, period)
	if err != nil {
		return model.RSIReading{}
	}
	avgLoss, err := LastSMA(losses, period)
	if err != nil {
		return model.RSIReading{}
	}
	if math.Abs(avgGain) < rsiEpsilon {
		avgGain = 0
	}
	if math.Abs(avgLoss) < rsiEpsilon {
		avgLoss = 0
	}

	var rsi float64
	switch {
	case avgLoss == 0 && avgGain == 0:
		rsi = 50 // flat window
	case avgLoss == 0:
		rsi = 100
	default:
		rs := avgGain / avgLoss
		rsi = 100 - 100/(1+rs)
	}
	if math.IsNaN(rsi) || math.IsInf(rsi, 0) {
		return model.RSIReading{}
	}
	rsi = Round2(math.Min(100, math.Max(0, rsi)))
	return model.RSIReading{Value: &rsi}
}
