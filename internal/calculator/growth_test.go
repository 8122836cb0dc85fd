package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FairValue/internal/model"
)

func TestDividendGrowth_InsufficientHistory(t *testing.T) {
	assert.Nil(t, DividendGrowth(nil))
	assert.Nil(t, DividendGrowth(model.DividendSeries{}))
	// Several payments inside one calendar year are still a single annual point.
	assert.Nil(t, DividendGrowth(quarterly(2023, 2.0)))
}

func TestDividendGrowth_GeometricMean(t *testing.T) {
	g := DividendGrowth(quarterly(2020, 1.0, 1.1, 1.21))
	require.NotNil(t, g)
	assert.InDelta(t, 0.10, *g, 1e-9)
}

func TestDividendGrowth_ZeroYearsBetweenPayments(t *testing.T) {
	divs := model.DividendSeries{
		{Date: day(2019, time.June, 1), Amount: 1.0},
		{Date: day(2021, time.June, 1), Amount: 1.0},
	}
	// 2020 paid nothing, so growth out of it is unbounded.
	assert.Nil(t, DividendGrowth(divs))
}

func TestMarketReturn_ConstantReturnIsInvariant(t *testing.T) {
	for _, r := range []float64{-0.05, 0, 0.04, 0.08, 0.25} {
		closes := []float64{100}
		for i := 0; i < 10; i++ {
			closes = append(closes, closes[len(closes)-1]*(1+r))
		}
		got := MarketReturn(yearEndCloses(2014, closes...))
		require.NotNil(t, got, "r=%v", r)
		assert.InDelta(t, r, *got, 1e-9, "r=%v", r)
	}
}

func TestMarketReturn_InsufficientData(t *testing.T) {
	assert.Nil(t, MarketReturn(nil))
	assert.Nil(t, MarketReturn(yearEndCloses(2024, 4800)))
	assert.Nil(t, MarketReturn(dailyCloses(100, 101, 102)))
}

func TestMarketReturn_UsesLastCloseOfEachYear(t *testing.T) {
	series := model.PriceSeries{
		{Date: day(2022, time.January, 3), Close: 50},
		{Date: day(2022, time.December, 30), Close: 100},
		{Date: day(2023, time.June, 1), Close: 500},
		{Date: day(2023, time.December, 29), Close: 121},
		{Date: day(2024, time.December, 31), Close: 121},
	}
	got := MarketReturn(series)
	require.NotNil(t, got)
	assert.InDelta(t, 0.1, *got, 1e-9)
}

func TestAnnualLastClose_CarriesGapYears(t *testing.T) {
	series := model.PriceSeries{
		{Date: day(2020, time.December, 31), Close: 10},
		{Date: day(2022, time.December, 30), Close: 12},
	}
	yearly := AnnualLastClose(series)
	assert.Equal(t, model.AnnualSeries{{Year: 2020, Value: 10}, {Year: 2021, Value: 10}, {Year: 2022, Value: 12}}, yearly)
}

func TestPctChanges(t *testing.T) {
	assert.Nil(t, PctChanges([]float64{1}))
	got := PctChanges([]float64{0, 0, 2, 3})
	require.Len(t, got, 2)
	assert.True(t, math.IsInf(got[0], 1))
	assert.InDelta(t, 0.5, got[1], 1e-12)
}

func TestGeometricMeanReturn(t *testing.T) {
	assert.Nil(t, GeometricMeanReturn(nil))
	assert.Nil(t, GeometricMeanReturn([]float64{math.Inf(1), -1}))

	got := GeometricMeanReturn([]float64{0.10, -0.10})
	require.NotNil(t, got)
	assert.InDelta(t, math.Sqrt(1.1*0.9)-1, *got, 1e-12)
}
