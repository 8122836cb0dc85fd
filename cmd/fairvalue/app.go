package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"FairValue/internal/collector"
	"FairValue/internal/config"
	"FairValue/internal/logger"
	"FairValue/internal/valuation"
)

// app holds the wiring shared by every subcommand.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	service *valuation.Service
}

func resolveConfigPath() string {
	if *configPath != "" {
		return *configPath
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func newApp() (*app, error) {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(log)

	fetcher := collector.NewNativeFetcher(log)
	var benchmarks collector.BenchmarkFetcher = fetcher
	if cfg.DataSource.BenchmarkProvider == config.ProviderYahoo {
		benchmarks = collector.NewYahooFetcher(cfg.Proxy, log)
	}
	log.Info().
		Str("fetcher", fetcher.Name()).
		Str("benchmarks", benchmarks.Name()).
		Msg("data sources ready")

	opts := collector.DefaultOptions()
	opts.TreasurySymbol = cfg.DataSource.TreasurySymbol
	opts.IndexSymbol = cfg.DataSource.IndexSymbol
	opts.SpotTimeout = cfg.DataSource.SpotTimeout

	col := collector.NewCollector(fetcher, benchmarks, opts, log)
	svc := valuation.NewService(col, valuation.Options{BenchmarkPE: cfg.Valuation.BenchmarkPE}, log)

	return &app{cfg: cfg, log: log, service: svc}, nil
}
