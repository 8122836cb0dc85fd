package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"FairValue/internal/notifier"
	"FairValue/internal/scheduler"
	"FairValue/internal/server"
)

type serveCmd struct {
	runOnStart bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the web server, watchlist schedule and chat bot" }
func (*serveCmd) Usage() string {
	return `serve [-run-on-start]

  Serves the valuation form and JSON API. When Telegram credentials are
  configured it also answers chat commands and sends the watchlist digest on
  its cron schedule. Stops gracefully on SIGINT or SIGTERM.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.runOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "send the watchlist digest once at startup")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log := a.log

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Log:      log,
		Valuer:   a.service,
		Port:     a.cfg.Server.Port,
		Currency: a.cfg.Valuation.Currency,
	})
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if a.cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, log)
		sched := scheduler.NewScheduler(ctx, a.service, tn, a.cfg.Watchlist.Symbols, a.cfg.Valuation.Currency, log)
		if len(a.cfg.Watchlist.Symbols) > 0 {
			if err := sched.Register(a.cfg.Watchlist.Cron); err != nil {
				log.Error().Err(err).Msg("register cron tasks")
				return subcommands.ExitFailure
			}
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")

		if c.runOnStart && len(a.cfg.Watchlist.Symbols) > 0 {
			log.Info().Msg("run-on-start enabled, sending watchlist digest now")
			go sched.RunWatchlistNow()
		}
	} else {
		log.Info().Msg("telegram not configured, chat bot and watchlist disabled")
	}

	log.Info().Msg("FairValue is running. Press Ctrl+C to stop.")

	status := subcommands.ExitSuccess
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, stopping...")
	case err := <-errCh:
		log.Error().Err(err).Msg("http server failed")
		status = subcommands.ExitFailure
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	log.Info().Msg("FairValue stopped")
	return status
}
