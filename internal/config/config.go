package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Benchmark providers.
const (
	ProviderYahoo    = "yahoo"
	ProviderYFinance = "yfinance"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BenchmarkProvider string        `yaml:"benchmark_provider"`
		TreasurySymbol    string        `yaml:"treasury_symbol"`
		IndexSymbol       string        `yaml:"index_symbol"`
		SpotTimeout       time.Duration `yaml:"spot_timeout"`
	} `yaml:"data_source"`
	Valuation struct {
		BenchmarkPE float64 `yaml:"benchmark_pe"`
		Currency    string  `yaml:"currency"`
	} `yaml:"valuation"`
	Watchlist struct {
		Symbols []string `yaml:"symbols"`
		Cron    string   `yaml:"cron"`
	} `yaml:"watchlist"`
	Proxy string `yaml:"proxy"`
}

// Load reads a .env file if present, then config from a YAML file, then
// applies environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FAIRVALUE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("FAIRVALUE_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("WATCHLIST_CRON"); v != "" {
		cfg.Watchlist.Cron = v
	}
	if v := os.Getenv("BENCHMARK_PROVIDER"); v != "" {
		cfg.DataSource.BenchmarkProvider = v
	}

	cfg.Watchlist.Symbols = cleanSymbols(cfg.Watchlist.Symbols)

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.DataSource.BenchmarkProvider == "" {
		cfg.DataSource.BenchmarkProvider = ProviderYFinance
	}
	if cfg.DataSource.TreasurySymbol == "" {
		cfg.DataSource.TreasurySymbol = "^TNX"
	}
	if cfg.DataSource.IndexSymbol == "" {
		cfg.DataSource.IndexSymbol = "^GSPC"
	}
	if cfg.DataSource.SpotTimeout == 0 {
		cfg.DataSource.SpotTimeout = 10 * time.Second
	}
	if cfg.Valuation.BenchmarkPE == 0 {
		cfg.Valuation.BenchmarkPE = 20
	}
	if cfg.Valuation.Currency == "" {
		cfg.Valuation.Currency = "USD"
	}
	if cfg.Watchlist.Cron == "" {
		cfg.Watchlist.Cron = "0 30 21 * * 1-5"
	}

	return cfg, nil
}

func cleanSymbols(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// TelegramEnabled reports whether both Telegram credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Valuation.BenchmarkPE <= 0 {
		return fmt.Errorf("valuation.benchmark_pe must be positive")
	}
	if money.GetCurrency(c.Valuation.Currency) == nil {
		return fmt.Errorf("valuation.currency %q is not a known currency code", c.Valuation.Currency)
	}
	switch c.DataSource.BenchmarkProvider {
	case ProviderYahoo, ProviderYFinance:
	default:
		return fmt.Errorf("data_source.benchmark_provider must be %q or %q, got %q",
			ProviderYahoo, ProviderYFinance, c.DataSource.BenchmarkProvider)
	}
	if c.DataSource.SpotTimeout < 0 {
		return fmt.Errorf("data_source.spot_timeout must not be negative")
	}
	if len(c.Watchlist.Symbols) > 0 && !c.TelegramEnabled() {
		return fmt.Errorf("watchlist requires telegram.bot_token and telegram.chat_id")
	}
	return nil
}
