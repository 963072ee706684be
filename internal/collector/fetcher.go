// Package collector fetches historical price data from market-data
// providers and hands it to the pipeline as a raw series.
package collector

import (
	"fmt"
	"time"

	"github.com/moniburnejko/stock-analysis-tool/internal/series"
)

// Fetcher defines the interface for fetching historical price data.
type Fetcher interface {
	FetchHistory(symbol, period, interval string) (*series.Series, error)
	Name() string
}

// Periods lists the accepted fetch periods.
var Periods = map[string]bool{
	"1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true,
	"max": true,
}

// Intervals lists the accepted fetch intervals.
var Intervals = map[string]bool{
	"1d": true, "1wk": true, "1mo": true,
}

// periodStart converts a period token into the inclusive start date of the
// requested window, relative to now. "max" maps to a date before any
// exchange listing.
func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "1mo":
		return now.AddDate(0, -1, 0), nil
	case "3mo":
		return now.AddDate(0, -3, 0), nil
	case "6mo":
		return now.AddDate(0, -6, 0), nil
	case "1y":
		return now.AddDate(-1, 0, 0), nil
	case "2y":
		return now.AddDate(-2, 0, 0), nil
	case "5y":
		return now.AddDate(-5, 0, 0), nil
	case "10y":
		return now.AddDate(-10, 0, 0), nil
	case "max":
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}
