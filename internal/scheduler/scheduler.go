package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"FairValue/internal/model"
	"FairValue/internal/notifier"
	"FairValue/internal/valuation"
)

// Valuer produces a valuation report for a ticker.
type Valuer interface {
	Value(ctx context.Context, ticker string) (*model.Report, error)
}

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the watchlist digest on a cron schedule and answers chat
// commands.
type Scheduler struct {
	Cron      *cron.Cron
	Valuer    Valuer
	Notifier  Sender
	Watchlist []string
	Currency  string
	Ctx       context.Context
	log       zerolog.Logger
	now       func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, v Valuer, n Sender, watchlist []string, currency string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		Valuer:    v,
		Notifier:  n,
		Watchlist: watchlist,
		Currency:  currency,
		Ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
		now:       time.Now,
	}
}

// Register adds the watchlist digest job. Expressions carry a seconds field.
func (s *Scheduler) Register(watchlistCron string) error {
	if _, err := s.Cron.AddFunc(watchlistCron, s.watchlistTask); err != nil {
		return fmt.Errorf("register watchlist task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("watchlist", len(s.Watchlist)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunWatchlistNow executes the watchlist task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunWatchlistNow() {
	s.watchlistTask()
}

func (s *Scheduler) watchlistTask() {
	s.log.Info().Strs("symbols", s.Watchlist).Msg("running watchlist task")
	s.trySend(s.BuildDigest(s.Ctx))
}

// BuildDigest values every watchlist symbol in turn and formats the digest.
func (s *Scheduler) BuildDigest(ctx context.Context) string {
	reports := make([]*model.Report, 0, len(s.Watchlist))
	for _, symbol := range s.Watchlist {
		if ctx.Err() != nil {
			break
		}
		r, err := s.Valuer.Value(ctx, symbol)
		if err != nil {
			s.log.Error().Err(err).Str("ticker", symbol).Msg("watchlist valuation failed")
			continue
		}
		reports = append(reports, r)
	}
	return notifier.FormatDigest(reports, s.Currency, s.now())
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// "/value@SomeBot KO" in group chats
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	switch name {
	case "/value":
		if len(fields) < 2 {
			return "Usage: /value TICKER"
		}
		r, err := s.Valuer.Value(ctx, fields[1])
		if errors.Is(err, valuation.ErrEmptyTicker) {
			return "Usage: /value TICKER"
		}
		if err != nil {
			s.log.Error().Err(err).Str("ticker", fields[1]).Msg("chat valuation failed")
			return fmt.Sprintf("❌ valuation failed: %v", err)
		}
		return notifier.FormatReport(r, s.Currency)
	case "/watchlist":
		return s.BuildDigest(ctx)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
