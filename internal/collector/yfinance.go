package collector

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"FairValue/internal/model"
)

// NativeFetcher implements Fetcher using the go-yfinance client, which
// handles the cookie and crumb Yahoo requires for fundamentals. The client
// calls do not take a context, so each one runs in its own goroutine and is
// abandoned when ctx is done.
type NativeFetcher struct {
	log zerolog.Logger
	now func() time.Time
}

// NewNativeFetcher creates a new go-yfinance fetcher.
func NewNativeFetcher(log zerolog.Logger) *NativeFetcher {
	return &NativeFetcher{
		log: log.With().Str("fetcher", "yfinance").Logger(),
		now: time.Now,
	}
}

func (f *NativeFetcher) Name() string { return "yfinance" }

// FetchQuote returns the price, previous close, multiples, beta, trailing EPS,
// dividend rate and name of symbol.
func (f *NativeFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	return runWithContext(ctx, func() (*model.Quote, error) {
		t, err := ticker.New(symbol)
		if err != nil {
			return nil, classifyNative(fmt.Errorf("create ticker %s: %w", symbol, err))
		}
		defer t.Close()

		quote, qerr := t.Quote()
		if qerr != nil {
			quote = nil
			f.log.Debug().Err(qerr).Str("symbol", symbol).Msg("quote lookup failed, trying info")
		}
		info, ierr := t.Info()
		if ierr != nil {
			info = nil
			f.log.Debug().Err(ierr).Str("symbol", symbol).Msg("info lookup failed")
		}

		q := quoteFromNative(symbol, quote, info)
		if q.Price == nil && ierr != nil {
			return nil, classifyNative(fmt.Errorf("info %s: %w", symbol, ierr))
		}
		return q, nil
	})
}

// quoteFromNative merges the live quote and the summary info of symbol. Either
// may be nil.
func quoteFromNative(symbol string, quote *models.Quote, info *models.Info) *model.Quote {
	q := &model.Quote{Ticker: symbol}
	if quote != nil {
		q.Price = positive(quote.RegularMarketPrice)
		if q.Price == nil {
			q.Price = positive(quote.PostMarketPrice)
		}
	}
	if info == nil {
		return q
	}
	if q.Price == nil {
		q.Price = positive(info.CurrentPrice)
	}
	q.PreviousClose = positive(info.RegularMarketPreviousClose)
	q.PETrailing = positive(info.TrailingPE)
	q.PEForward = positive(info.ForwardPE)
	q.Beta = positive(info.Beta)
	q.DividendRate = positive(info.DividendRate)
	// loss-making companies report a negative EPS, which the P/E model rejects
	q.EPSTrailing = nonZero(info.TrailingEps)
	q.LongName = info.LongName
	if q.LongName == "" {
		q.LongName = info.ShortName
	}
	return q
}

// FetchDividends returns the cash dividends of symbol paid over a range such
// as "max" or "10y".
func (f *NativeFetcher) FetchDividends(ctx context.Context, symbol, period string) (model.DividendSeries, error) {
	return runWithContext(ctx, func() (model.DividendSeries, error) {
		t, err := ticker.New(symbol)
		if err != nil {
			return nil, classifyNative(fmt.Errorf("create ticker %s: %w", symbol, err))
		}
		defer t.Close()

		divs, err := t.Dividends()
		if err != nil {
			return nil, classifyNative(fmt.Errorf("dividends %s: %w", symbol, err))
		}
		return dividendsSince(divs, periodStart(period, f.now())), nil
	})
}

// dividendsSince keeps the positive payments on or after from, sorted by date.
func dividendsSince(divs []models.Dividend, from time.Time) model.DividendSeries {
	series := make(model.DividendSeries, 0, len(divs))
	for _, d := range divs {
		if d.Amount <= 0 || d.Date.Before(from) {
			continue
		}
		series = append(series, model.DividendEvent{Date: d.Date.UTC(), Amount: d.Amount})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

// periodStart turns a Yahoo range ("5d", "1mo", "10y", "ytd", "max") into the
// earliest date it covers. Unknown ranges cover everything.
func periodStart(period string, now time.Time) time.Time {
	p := strings.ToLower(strings.TrimSpace(period))
	if p == "ytd" {
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	for _, unit := range []string{"mo", "d", "y"} {
		num, ok := strings.CutSuffix(p, unit)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n <= 0 {
			return time.Time{}
		}
		switch unit {
		case "mo":
			return now.AddDate(0, -n, 0)
		case "d":
			return now.AddDate(0, 0, -n)
		default:
			return now.AddDate(-n, 0, 0)
		}
	}
	return time.Time{}
}

// FetchPrices returns daily closes over a range such as "1mo" or "10y".
func (f *NativeFetcher) FetchPrices(ctx context.Context, symbol, period string) (model.PriceSeries, error) {
	return runWithContext(ctx, func() (model.PriceSeries, error) {
		t, err := ticker.New(symbol)
		if err != nil {
			return nil, classifyNative(fmt.Errorf("create ticker %s: %w", symbol, err))
		}
		defer t.Close()

		bars, err := t.History(models.HistoryParams{
			Period:     period,
			Interval:   "1d",
			AutoAdjust: true,
		})
		if err != nil {
			return nil, classifyNative(fmt.Errorf("history %s: %w", symbol, err))
		}

		byDate := make(map[time.Time]float64, len(bars))
		for _, bar := range bars {
			d := bar.Date.UTC()
			byDate[time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)] = bar.Close
		}
		series := make(model.PriceSeries, 0, len(byDate))
		for d, c := range byDate {
			series = append(series, model.PricePoint{Date: d, Close: c})
		}
		sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
		return series, nil
	})
}

func positive(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

// classifyNative maps go-yfinance errors, which carry no types, onto the
// fetch error sentinels by message.
func classifyNative(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found") || strings.Contains(msg, "no data"):
		return fmt.Errorf("%w: %v", ErrSymbolNotFound, err)
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
}

func runWithContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrNetwork, ctx.Err())
	case r := <-ch:
		return r.v, r.err
	}
}
