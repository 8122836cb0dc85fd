package valuation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"FairValue/internal/collector"
	"FairValue/internal/model"
)

// ErrEmptyTicker is returned by Value for a blank ticker.
var ErrEmptyTicker = errors.New("ticker is required")

// Collector gathers market inputs for one ticker.
type Collector interface {
	Collect(ctx context.Context, ticker string) *model.MarketInputs
}

// Service produces a complete report for a ticker. It is what every caller
// (HTTP, CLI, chat) talks to.
type Service struct {
	collector Collector
	opts      Options
	log       zerolog.Logger
}

// NewService creates a new Service.
func NewService(c Collector, opts Options, log zerolog.Logger) *Service {
	return &Service{
		collector: c,
		opts:      opts,
		log:       log.With().Str("component", "valuation").Logger(),
	}
}

// Value collects and evaluates ticker. The only error is ErrEmptyTicker;
// market data problems are reported inside the report.
func (s *Service) Value(ctx context.Context, ticker string) (*model.Report, error) {
	ticker = collector.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrEmptyTicker
	}

	start := time.Now()
	in := s.collector.Collect(ctx, ticker)
	report := Evaluate(in, s.opts)

	ev := s.log.Info().
		Str("ticker", ticker).
		Str("report_id", report.ID).
		Bool("ddm_ok", report.DDM.Err == nil).
		Str("pe_verdict", string(report.PE.Verdict)).
		Dur("elapsed", time.Since(start))
	if report.DDM.Err != nil {
		ev = ev.AnErr("ddm_error", report.DDM.Err)
	}
	ev.Msg("valuation complete")
	return report, nil
}
