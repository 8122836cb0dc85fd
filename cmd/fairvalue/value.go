package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"FairValue/internal/display"
	"FairValue/internal/model"
)

type valueCmd struct {
	asJSON bool
	out    io.Writer
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value one or more stocks and print the reports" }
func (*valueCmd) Usage() string {
	return `value [-json] TICKER...

  Values each ticker with the dividend discount model and the P/E relative
  valuation, and prints one report per ticker. Missing market data shows up
  as "Data unavailable" rather than failing the command.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "print reports as JSON, one per line")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ticker is required.")
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, ticker := range f.Args() {
		report, err := a.service.Value(ctx, ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error valuing %q: %v\n", ticker, err)
			status = subcommands.ExitFailure
			continue
		}
		if err := writeReport(c.out, report, a.cfg.Valuation.Currency, c.asJSON); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return status
}

// writeReport prints a report as aligned text or as a single JSON line.
func writeReport(w io.Writer, r *model.Report, currency string, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(r)
	}

	title := r.Ticker
	if r.LongName != "" {
		title += " (" + r.LongName + ")"
	}
	fmt.Fprintf(w, "%s\n", title)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Dividend Discount Model\t\n")
	fmt.Fprintf(tw, "  Next dividend (D1)\t%s\n", display.Money(r.DDM.NextDividend, currency))
	fmt.Fprintf(tw, "  Cost of equity (r)\t%s\n", display.Rate(r.DDM.CostOfEquity))
	fmt.Fprintf(tw, "  Growth rate (g)\t%s\n", display.Rate(r.DDM.GrowthRate))
	fmt.Fprintf(tw, "  Risk-free rate\t%s\n", display.Rate(r.DDM.RiskFreeRate))
	fmt.Fprintf(tw, "  Market return\t%s\n", display.Rate(r.DDM.MarketReturn))
	fmt.Fprintf(tw, "  Beta\t%s\n", display.Number(r.DDM.Beta))
	if r.DDM.Err != nil {
		fmt.Fprintf(tw, "  Fair value\t%s\n", r.DDM.Err)
	} else {
		fmt.Fprintf(tw, "  Fair value\t%s\n", display.Money(r.DDM.FairValue, currency))
	}

	fmt.Fprintf(tw, "P/E Relative Valuation\t\n")
	fmt.Fprintf(tw, "  Price\t%s\n", display.Money(r.PE.Price, currency))
	fmt.Fprintf(tw, "  EPS\t%s\n", display.Money(r.PE.EPS, currency))
	fmt.Fprintf(tw, "  Current P/E\t%s\n", display.Number(r.PE.CurrentPE))
	fmt.Fprintf(tw, "  Benchmark P/E\t%s\n", display.Number(r.PE.HistoricalPE))
	if r.PE.FairValue != nil {
		fmt.Fprintf(tw, "  Fair value\t%s\n", display.Money(r.PE.FairValue, currency))
	} else {
		fmt.Fprintf(tw, "  Fair value\t%s\n", r.PE.FairValueNote)
	}
	fmt.Fprintf(tw, "  Valuation\t%s\n", r.PE.Verdict)
	fmt.Fprintf(tw, "  RSI (14)\t%s\n", r.PE.RSI)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
