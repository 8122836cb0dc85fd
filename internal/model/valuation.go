package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// ValuationResult is the outcome of the Gordon Growth (dividend discount) model.
// FairValue is set if and only if Err is nil; the intermediate values are
// reported whichever way it went.
type ValuationResult struct {
	NextDividend *float64 `json:"next_dividend"`
	CostOfEquity *float64 `json:"cost_of_equity"`
	GrowthRate   *float64 `json:"growth_rate"`
	RiskFreeRate *float64 `json:"risk_free_rate"`
	MarketReturn *float64 `json:"market_return"`
	Beta         *float64 `json:"beta"`
	FairValue    *float64 `json:"fair_value"`
	Err          error    `json:"-"`
}

// MarshalJSON adds the error text under "error".
func (r ValuationResult) MarshalJSON() ([]byte, error) {
	type alias ValuationResult
	out := struct {
		alias
		Error *string `json:"error"`
	}{alias: alias(r)}
	if r.Err != nil {
		msg := r.Err.Error()
		out.Error = &msg
	}
	return json.Marshal(out)
}

// Verdict compares a stock's current multiple against its benchmark multiple.
type Verdict string

const (
	VerdictOvervalued      Verdict = "Overvalued"
	VerdictUndervalued     Verdict = "Undervalued"
	VerdictFairlyValued    Verdict = "Fairly Valued"
	VerdictDataUnavailable Verdict = "Data unavailable"
)

// Unavailable is shown wherever a reading could not be produced.
const Unavailable = "Data unavailable"

// RSIReading is a relative strength index value, or nothing when there was
// not enough history.
type RSIReading struct {
	Value *float64
}

// Available reports whether the reading holds a value.
func (r RSIReading) Available() bool { return r.Value != nil }

func (r RSIReading) String() string {
	if r.Value == nil {
		return Unavailable
	}
	return formatFloat(*r.Value)
}

// MarshalJSON encodes the value as a number, or the unavailable sentinel.
func (r RSIReading) MarshalJSON() ([]byte, error) {
	if r.Value == nil {
		return json.Marshal(Unavailable)
	}
	return json.Marshal(*r.Value)
}

// PEValuationResult is the outcome of the P/E relative valuation. When
// FairValue is nil, FairValueNote explains why.
type PEValuationResult struct {
	Price         *float64   `json:"price"`
	EPS           *float64   `json:"eps"`
	CurrentPE     *float64   `json:"current_pe"`
	HistoricalPE  *float64   `json:"historical_pe"`
	FairValue     *float64   `json:"fair_value"`
	FairValueNote string     `json:"fair_value_note,omitempty"`
	Verdict       Verdict    `json:"valuation"`
	RSI           RSIReading `json:"rsi"`
}

// Report is the full answer to one valuation request.
type Report struct {
	ID          string            `json:"id"`
	Ticker      string            `json:"ticker"`
	LongName    string            `json:"long_name,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	DDM         ValuationResult   `json:"ddm"`
	PE          PEValuationResult `json:"pe"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
