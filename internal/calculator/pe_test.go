package calculator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FairValue/internal/model"
)

func TestRelativeValue_DerivesCurrentPE(t *testing.T) {
	res := RelativeValue(PEInputs{
		Prices:    dailyCloses(29.5, 30.0),
		EPS:       ptr(2.0),
		ForwardPE: ptr(18.0),
	})
	require.NotNil(t, res.CurrentPE)
	assert.Equal(t, 15.0, *res.CurrentPE)
	require.NotNil(t, res.HistoricalPE)
	assert.Equal(t, 18.0, *res.HistoricalPE)
	require.NotNil(t, res.FairValue)
	assert.Equal(t, 36.0, *res.FairValue)
	assert.Equal(t, model.VerdictUndervalued, res.Verdict)
	assert.Empty(t, res.FairValueNote)
}

func TestRelativeValue_NonPositiveEPS(t *testing.T) {
	for _, eps := range []*float64{nil, ptr(0), ptr(-1.5)} {
		res := RelativeValue(PEInputs{
			Prices:     dailyCloses(30.0),
			EPS:        eps,
			TrailingPE: ptr(12.0),
			ForwardPE:  ptr(18.0),
		})
		assert.Nil(t, res.FairValue)
		assert.Equal(t, InsufficientData, res.FairValueNote)
		assert.Equal(t, model.VerdictDataUnavailable, res.Verdict)
	}
}

func TestRelativeValue_FairlyValued(t *testing.T) {
	res := RelativeValue(PEInputs{
		Prices:     dailyCloses(30.0),
		EPS:        ptr(2.0),
		TrailingPE: ptr(15.0),
		ForwardPE:  ptr(15.0),
	})
	assert.Equal(t, model.VerdictFairlyValued, res.Verdict)
	require.NotNil(t, res.FairValue)
	assert.Equal(t, 30.0, *res.FairValue)
}

func TestRelativeValue_DefaultBenchmark(t *testing.T) {
	res := RelativeValue(PEInputs{
		Prices:     dailyCloses(50.0),
		EPS:        ptr(2.0),
		TrailingPE: ptr(25.0),
	})
	require.NotNil(t, res.HistoricalPE)
	assert.Equal(t, DefaultBenchmarkPE, *res.HistoricalPE)
	require.NotNil(t, res.FairValue)
	assert.Equal(t, 40.0, *res.FairValue)
	assert.Equal(t, model.VerdictOvervalued, res.Verdict)

	res = RelativeValue(PEInputs{Prices: dailyCloses(50.0), EPS: ptr(2.0), FallbackPE: 30})
	require.NotNil(t, res.FairValue)
	assert.Equal(t, 60.0, *res.FairValue)
	assert.Equal(t, model.VerdictUndervalued, res.Verdict)
}

func TestRelativeValue_PriceUnavailable(t *testing.T) {
	res := RelativeValue(PEInputs{EPS: ptr(2.0), ForwardPE: ptr(18.0)})
	assert.Nil(t, res.Price)
	assert.Nil(t, res.EPS)
	assert.Nil(t, res.CurrentPE)
	assert.Nil(t, res.HistoricalPE)
	assert.Nil(t, res.FairValue)
	assert.Equal(t, "Price data unavailable", res.FairValueNote)
	assert.Equal(t, model.VerdictDataUnavailable, res.Verdict)

	res = RelativeValue(PEInputs{Prices: dailyCloses(30.0), PricesErr: errors.New("timeout"), EPS: ptr(2.0)})
	assert.Nil(t, res.FairValue)
	assert.Equal(t, "Error fetching price data: timeout", res.FairValueNote)
}

func TestCompareMultiples(t *testing.T) {
	assert.Equal(t, model.VerdictOvervalued, CompareMultiples(ptr(25), ptr(20)))
	assert.Equal(t, model.VerdictUndervalued, CompareMultiples(ptr(15), ptr(20)))
	assert.Equal(t, model.VerdictFairlyValued, CompareMultiples(ptr(15), ptr(15)))
	assert.Equal(t, model.VerdictDataUnavailable, CompareMultiples(nil, ptr(20)))
	assert.Equal(t, model.VerdictDataUnavailable, CompareMultiples(ptr(15), nil))
}
