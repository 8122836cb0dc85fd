package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FairValue/internal/collector"
	"FairValue/internal/model"
	"FairValue/internal/valuation"
)

func ptr(v float64) *float64 { return &v }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	f := collector.NewStaticFetcher()
	end := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	f.Quotes["KO"] = &model.Quote{
		Ticker:       "KO",
		LongName:     "The Coca-Cola Company",
		EPSTrailing:  ptr(2),
		PEForward:    ptr(18),
		Beta:         ptr(0.6),
		DividendRate: ptr(1.94),
	}
	f.Prices["KO"] = model.PriceSeries{{Date: end, Close: 30}}
	f.Quotes["^TNX"] = &model.Quote{Ticker: "^TNX", Price: ptr(4.2)}

	col := collector.NewCollector(f, nil, collector.DefaultOptions(), zerolog.Nop())
	svc := valuation.NewService(col, valuation.Options{}, zerolog.Nop())
	return New(Config{Log: zerolog.Nop(), Valuer: svc, Port: 0, Currency: "USD"})
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetValuation(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/valuations/ko", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "KO", body["ticker"])
	assert.NotEmpty(t, body["id"])

	pe := body["pe"].(map[string]interface{})
	assert.Equal(t, 15.0, pe["current_pe"])
	assert.Equal(t, 36.0, pe["fair_value"])
	assert.Equal(t, "Undervalued", pe["valuation"])
	assert.Equal(t, "Data unavailable", pe["rsi"])

	ddm := body["ddm"].(map[string]interface{})
	assert.Nil(t, ddm["fair_value"])
	assert.Equal(t, "dividends data is empty", ddm["error"])
	assert.InDelta(t, 0.042, ddm["risk_free_rate"], 1e-12)
}

func TestGetValuation_EveryFetchFails(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/valuations/NOPE", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Ticker string `json:"ticker"`
		DDM    struct {
			FairValue *float64 `json:"fair_value"`
			Error     *string  `json:"error"`
		} `json:"ddm"`
		PE struct {
			FairValue     *float64 `json:"fair_value"`
			FairValueNote string   `json:"fair_value_note"`
			Valuation     string   `json:"valuation"`
			RSI           string   `json:"rsi"`
		} `json:"pe"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "NOPE", report.Ticker)
	assert.Nil(t, report.DDM.FairValue)
	require.NotNil(t, report.DDM.Error)
	assert.Nil(t, report.PE.FairValue)
	assert.Contains(t, report.PE.FairValueNote, "Error fetching price data")
	assert.Equal(t, "Data unavailable", report.PE.Valuation)
	assert.Equal(t, "Data unavailable", report.PE.RSI)
}

func TestGetValuation_BlankTicker(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/valuations/%20", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"ticker is required"}`, rec.Body.String())
}

type failingValuer struct{}

func (failingValuer) Value(context.Context, string) (*model.Report, error) {
	return nil, errors.New("upstream exploded")
}

func TestGetValuation_InternalError(t *testing.T) {
	s := New(Config{Log: zerolog.Nop(), Valuer: failingValuer{}, Currency: "USD"})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/valuations/KO", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream exploded")
}

func TestForm(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `<form method="post" action="/">`)
	assert.NotContains(t, rec.Body.String(), "Dividend Discount Model")
}

func postForm(s *Server, ticker string) *httptest.ResponseRecorder {
	form := url.Values{"ticker": {ticker}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestFormSubmit(t *testing.T) {
	s := newTestServer(t)
	rec := postForm(s, "ko")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The Coca-Cola Company")
	assert.Contains(t, body, `value="KO"`)
	assert.Contains(t, body, "dividends data is empty")
	assert.Contains(t, body, "<b>$36.00</b>")
	assert.Contains(t, body, "Undervalued")
	assert.Contains(t, body, "4.20%")
	assert.Contains(t, body, "Data unavailable")
}

func TestFormSubmit_BlankTicker(t *testing.T) {
	s := newTestServer(t)
	rec := postForm(s, "   ")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a ticker symbol.")
	assert.NotContains(t, rec.Body.String(), "Dividend Discount Model")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/valuations/KO", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
