package calculator

import (
	"time"

	"FairValue/internal/model"
)

func ptr(v float64) *float64 { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// quarterly builds four equal payments per year from the given yearly totals,
// starting in firstYear.
func quarterly(firstYear int, totals ...float64) model.DividendSeries {
	var divs model.DividendSeries
	for i, total := range totals {
		for _, m := range []time.Month{time.February, time.May, time.August, time.November} {
			divs = append(divs, model.DividendEvent{Date: day(firstYear+i, m, 10), Amount: total / 4})
		}
	}
	return divs
}

// yearEndCloses builds one close per year on the last trading day of December.
func yearEndCloses(firstYear int, closes ...float64) model.PriceSeries {
	series := make(model.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = model.PricePoint{Date: day(firstYear+i, time.December, 30), Close: c}
	}
	return series
}

func dailyCloses(closes ...float64) model.PriceSeries {
	start := day(2024, time.March, 1)
	series := make(model.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return series
}
