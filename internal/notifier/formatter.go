package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"FairValue/internal/display"
	"FairValue/internal/model"
)

// FormatReport formats a valuation report into a Telegram message.
func FormatReport(r *model.Report, currency string) string {
	var b strings.Builder

	title := html.EscapeString(r.Ticker)
	if r.LongName != "" {
		title += " · " + html.EscapeString(r.LongName)
	}
	b.WriteString(fmt.Sprintf("📊 <b>%s</b>\n<i>%s</i>\n\n", title, r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")))

	// Dividend discount model
	d := r.DDM
	b.WriteString("🏦 <b>Dividend Discount Model</b>\n")
	b.WriteString(fmt.Sprintf("Next dividend (D1): %s\n", display.Money(d.NextDividend, currency)))
	b.WriteString(fmt.Sprintf("Cost of equity (r): %s\n", display.Rate(d.CostOfEquity)))
	b.WriteString(fmt.Sprintf("Growth rate (g): %s\n", display.Rate(d.GrowthRate)))
	b.WriteString(fmt.Sprintf("Risk-free rate: %s\n", display.Rate(d.RiskFreeRate)))
	b.WriteString(fmt.Sprintf("Market return: %s\n", display.Rate(d.MarketReturn)))
	b.WriteString(fmt.Sprintf("Beta: %s\n", display.Number(d.Beta)))
	b.WriteString(fmt.Sprintf("Fair value: <b>%s</b>\n", display.Money(d.FairValue, currency)))
	if d.Err != nil {
		b.WriteString(fmt.Sprintf("⚠️ %s\n", html.EscapeString(d.Err.Error())))
	}

	// Relative valuation
	p := r.PE
	b.WriteString("\n📈 <b>P/E Relative Valuation</b>\n")
	b.WriteString(fmt.Sprintf("Price: %s\n", display.Money(p.Price, currency)))
	b.WriteString(fmt.Sprintf("EPS: %s\n", display.Money(p.EPS, currency)))
	b.WriteString(fmt.Sprintf("Current P/E: %s\n", display.Number(p.CurrentPE)))
	b.WriteString(fmt.Sprintf("Benchmark P/E: %s\n", display.Number(p.HistoricalPE)))
	if p.FairValue != nil {
		b.WriteString(fmt.Sprintf("Fair value: <b>%s</b>\n", display.Money(p.FairValue, currency)))
	} else {
		b.WriteString(fmt.Sprintf("Fair value: %s\n", html.EscapeString(p.FairValueNote)))
	}
	b.WriteString(fmt.Sprintf("Valuation: %s\n", p.Verdict))
	b.WriteString(fmt.Sprintf("RSI(14): %s\n", p.RSI))

	return b.String()
}

// FormatDigest formats one line per report for the scheduled watchlist run.
func FormatDigest(reports []*model.Report, currency string, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Watchlist digest</b> | %s\n\n", at.Format("2006-01-02")))
	if len(reports) == 0 {
		b.WriteString("Watchlist is empty.\n")
		return b.String()
	}
	for _, r := range reports {
		b.WriteString(fmt.Sprintf("<b>%s</b>: DDM %s · P/E %s (%s) · RSI %s\n",
			html.EscapeString(r.Ticker),
			display.Money(r.DDM.FairValue, currency),
			display.Money(r.PE.FairValue, currency),
			r.PE.Verdict,
			r.PE.RSI))
	}
	return b.String()
}

// FormatHelp lists the chat commands.
func FormatHelp() string {
	var b strings.Builder
	b.WriteString("🤖 <b>FairValue commands</b>\n\n")
	b.WriteString("/value TICKER - value a stock now\n")
	b.WriteString("/watchlist - send the watchlist digest now\n")
	b.WriteString("/help - show this message\n")
	return b.String()
}
