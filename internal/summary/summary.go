// Package summary reduces an enriched price series to the scalar
// statistics printed at the end of a run.
package summary

import (
	"fmt"
	"math"
	"strings"

	"github.com/moniburnejko/stock-analysis-tool/internal/series"
)

// Summary holds the per-run statistics in display order. Numeric fields are
// rounded to two decimals at computation time; statistics that cannot be
// computed (no returns, zero start price) hold NaN and print as "NaN".
type Summary struct {
	Rows               int
	StartDate          string
	EndDate            string
	StartPrice         float64
	EndPrice           float64
	TotalReturnPct     float64
	DailyReturnMeanPct float64
	DailyReturnStdPct  float64
	MinPrice           float64
	MaxPrice           float64
}

const dateFormat = "2006-01-02"

// Summarize computes the summary for an enriched series. The series must
// expose a canonical close; a missing "return_daily" column or one with no
// observations degrades the return statistics to NaN rather than failing.
func Summarize(s *series.Series) (*Summary, error) {
	closes, err := series.Close(s)
	if err != nil {
		return nil, err
	}

	var returns []float64
	if col, ok := s.Column(series.ColReturn); ok {
		for _, v := range col {
			if !series.IsMissing(v) {
				returns = append(returns, v)
			}
		}
	}

	start := closes[0]
	end := closes[len(closes)-1]

	total := series.Missing()
	if !series.IsMissing(start) && !series.IsMissing(end) && start != 0 {
		total = (end/start - 1) * 100
	}

	mean, std := meanStd(returns)
	lo, hi := minMax(closes)

	return &Summary{
		Rows:               s.Len(),
		StartDate:          s.Date(0).Format(dateFormat),
		EndDate:            s.Date(s.Len() - 1).Format(dateFormat),
		StartPrice:         round2(start),
		EndPrice:           round2(end),
		TotalReturnPct:     round2(total),
		DailyReturnMeanPct: round2(mean * 100),
		DailyReturnStdPct:  round2(std * 100),
		MinPrice:           round2(lo),
		MaxPrice:           round2(hi),
	}, nil
}

// Fields returns label/value pairs in display order.
func (s *Summary) Fields() [][2]string {
	return [][2]string{
		{"Rows", fmt.Sprintf("%d", s.Rows)},
		{"Start Date", s.StartDate},
		{"End Date", s.EndDate},
		{"Start Price", formatValue(s.StartPrice)},
		{"End Price", formatValue(s.EndPrice)},
		{"Total Return (%)", formatValue(s.TotalReturnPct)},
		{"Daily Return Mean (%)", formatValue(s.DailyReturnMeanPct)},
		{"Daily Return Std (%)", formatValue(s.DailyReturnStdPct)},
		{"Min Price", formatValue(s.MinPrice)},
		{"Max Price", formatValue(s.MaxPrice)},
	}
}

// Format renders the summary as a labeled table for the console.
func (s *Summary) Format() string {
	var b strings.Builder
	for _, f := range s.Fields() {
		b.WriteString(fmt.Sprintf("%-22s %s\n", f[0], f[1]))
	}
	return b.String()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", v)
}

func round2(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}

// meanStd returns the mean and sample standard deviation. Fewer than one
// observation yields NaN for both; a single observation yields NaN std.
func meanStd(values []float64) (mean, std float64) {
	n := len(values)
	if n == 0 {
		return series.Missing(), series.Missing()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)
	if n < 2 {
		return mean, series.Missing()
	}
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	std = math.Sqrt(ss / float64(n-1))
	return mean, std
}

// minMax ignores missing values. All-missing input yields NaN bounds.
func minMax(values []float64) (lo, hi float64) {
	lo, hi = series.Missing(), series.Missing()
	for _, v := range values {
		if series.IsMissing(v) {
			continue
		}
		if series.IsMissing(lo) || v < lo {
			lo = v
		}
		if series.IsMissing(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}
