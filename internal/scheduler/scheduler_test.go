package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FairValue/internal/model"
	"FairValue/internal/valuation"
)

type fakeValuer struct {
	mu    sync.Mutex
	asked []string
	fail  map[string]error
}

func (f *fakeValuer) Value(_ context.Context, ticker string) (*model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, ticker)
	if err := f.fail[ticker]; err != nil {
		return nil, err
	}
	if ticker == "" {
		return nil, valuation.ErrEmptyTicker
	}
	fv := 36.0
	return &model.Report{
		Ticker: ticker,
		PE:     model.PEValuationResult{FairValue: &fv, Verdict: model.VerdictUndervalued},
	}, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func newTestScheduler(watchlist ...string) (*Scheduler, *fakeValuer, *fakeSender) {
	v := &fakeValuer{fail: map[string]error{}}
	n := &fakeSender{}
	s := NewScheduler(context.Background(), v, n, watchlist, "USD", zerolog.Nop())
	s.now = func() time.Time { return time.Date(2024, 6, 3, 21, 30, 0, 0, time.UTC) }
	return s, v, n
}

func TestRunWatchlistNow(t *testing.T) {
	s, v, n := newTestScheduler("KO", "JNJ", "PG")
	v.fail["JNJ"] = errors.New("boom")

	s.RunWatchlistNow()

	assert.Equal(t, []string{"KO", "JNJ", "PG"}, v.asked)
	msgs := n.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "2024-06-03")
	assert.Contains(t, msgs[0], "<b>KO</b>: DDM Data unavailable · P/E $36.00 (Undervalued)")
	assert.Contains(t, msgs[0], "<b>PG</b>")
	assert.NotContains(t, msgs[0], "JNJ", "failed valuations are left out")
}

func TestRegister(t *testing.T) {
	s, _, _ := newTestScheduler()
	assert.NoError(t, s.Register("0 30 21 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)
	assert.Error(t, s.Register("not a cron"))
}

func TestCronRunsDigest(t *testing.T) {
	s, _, n := newTestScheduler("KO")
	require.NoError(t, s.Register("* * * * * *"))
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return len(n.messages()) > 0 }, 3*time.Second, 20*time.Millisecond)
}

func TestHandleCommand(t *testing.T) {
	s, v, _ := newTestScheduler("KO")

	reply := s.HandleCommand(context.Background(), "/value msft")
	assert.Contains(t, reply, "<b>msft</b>")
	assert.Contains(t, reply, "Valuation: Undervalued")

	reply = s.HandleCommand(context.Background(), "/value@FairValueBot KO")
	assert.Contains(t, reply, "<b>KO</b>")

	assert.Equal(t, "Usage: /value TICKER", s.HandleCommand(context.Background(), "/value"))

	v.fail["BAD"] = errors.New("boom")
	assert.Contains(t, s.HandleCommand(context.Background(), "/value BAD"), "valuation failed: boom")

	assert.Contains(t, s.HandleCommand(context.Background(), "/watchlist"), "Watchlist digest")
	assert.Contains(t, s.HandleCommand(context.Background(), "hello"), "/value TICKER")
	assert.Contains(t, s.HandleCommand(context.Background(), "   "), "/value TICKER")
}
