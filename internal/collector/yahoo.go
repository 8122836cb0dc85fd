package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"FairValue/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher over the Yahoo Finance chart API, which
// needs no session crumb. Quotes carry only price, previous close and name,
// so it serves benchmark instruments; equity fundamentals come from
// NativeFetcher.
type YahooFetcher struct {
	Client    *http.Client
	BaseURL   string
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
	log       zerolog.Logger
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string, log zerolog.Logger) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: yahooBaseURL,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"TNX":    "^TNX",
		},
		log: log.With().Str("fetcher", "yahoo").Logger(),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
				PreviousClose      *float64 `json:"previousClose"`
				LongName           string   `json:"longName"`
				ShortName          string   `json:"shortName"`
			} `json:"meta"`
			Timestamp []int64 `json:"timestamp"`
			Events    struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// get performs a GET request and classifies failures into the fetch error
// sentinels.
func (f *YahooFetcher) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo fetch: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo read body: %v", ErrNetwork, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: yahoo: %s", ErrSymbolNotFound, describe(body))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: yahoo: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		// auth rejections and server faults are upstream outages to callers
		return nil, fmt.Errorf("%w: yahoo: status %d, body: %s", ErrNetwork, resp.StatusCode, describe(body))
	}
	return body, nil
}

// describe pulls the error description out of a Yahoo error body, falling
// back to the raw body.
func describe(body []byte) string {
	var env map[string]struct {
		Error *yahooError `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		for _, v := range env {
			if v.Error != nil && v.Error.Description != "" {
				return v.Error.Description
			}
		}
	}
	return strings.TrimSpace(string(body))
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string, dividends bool) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), interval, rng)
	if dividends {
		u += "&events=div"
	}

	body, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: yahoo decode: %v", ErrNetwork, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: yahoo api error: %s", ErrSymbolNotFound, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: yahoo: no data returned for %s", ErrSymbolNotFound, symbol)
	}
	return &chart, nil
}

// FetchPrices returns daily closes over a Yahoo range such as "1mo" or "10y".
func (f *YahooFetcher) FetchPrices(ctx context.Context, symbol, period string) (model.PriceSeries, error) {
	chart, err := f.fetchChart(ctx, symbol, "1d", period, false)
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := result.Indicators.Quote[0].Close

	byDate := make(map[time.Time]float64, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // skip null bars (holidays etc.)
		}
		t := time.Unix(ts, 0).UTC()
		byDate[time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)] = *closes[i]
	}

	series := make(model.PriceSeries, 0, len(byDate))
	for d, c := range byDate {
		series = append(series, model.PricePoint{Date: d, Close: c})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

// FetchDividends returns the cash dividend events paid over period.
func (f *YahooFetcher) FetchDividends(ctx context.Context, symbol, period string) (model.DividendSeries, error) {
	chart, err := f.fetchChart(ctx, symbol, "1mo", period, true)
	if err != nil {
		return nil, err
	}
	events := chart.Chart.Result[0].Events.Dividends
	divs := make(model.DividendSeries, 0, len(events))
	for _, ev := range events {
		if ev.Amount <= 0 {
			continue
		}
		divs = append(divs, model.DividendEvent{Date: time.Unix(ev.Date, 0).UTC(), Amount: ev.Amount})
	}
	sort.Slice(divs, func(i, j int) bool { return divs[i].Date.Before(divs[j].Date) })
	return divs, nil
}

// FetchQuote returns the latest price, previous close and name of symbol
// from the chart metadata. Fundamentals are left nil.
func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	chart, err := f.fetchChart(ctx, symbol, "1d", "5d", false)
	if err != nil {
		return nil, err
	}
	meta := chart.Chart.Result[0].Meta
	q := &model.Quote{
		Ticker:        symbol,
		Price:         meta.RegularMarketPrice,
		PreviousClose: meta.PreviousClose,
		LongName:      meta.LongName,
	}
	if q.PreviousClose == nil {
		q.PreviousClose = meta.ChartPreviousClose
	}
	if q.LongName == "" {
		q.LongName = meta.ShortName
	}
	f.log.Debug().Str("symbol", symbol).Bool("has_price", q.Price != nil).Msg("quote fetched")
	return q, nil
}

// IsFetchFailure reports whether err is one of the classified fetch failures.
func IsFetchFailure(err error) bool {
	return errors.Is(err, ErrSymbolNotFound) || errors.Is(err, ErrNetwork) || errors.Is(err, ErrRateLimited)
}
