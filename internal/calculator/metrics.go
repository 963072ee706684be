// Package calculator derives time-series metrics from a normalized price
// series.
package calculator

import (
	"fmt"

	"github.com/moniburnejko/stock-analysis-tool/internal/series"
)

// AddMetrics returns a new series with two derived columns appended:
// "return_daily" and "SMA_<window>". Original rows and columns are carried
// over untouched; the input is never modified.
//
// The canonical close is forward-filled before the return computation so an
// isolated missing price does not fabricate a large return when data
// resumes. A window of zero or less is rejected with ErrInvalidWindow; a
// window larger than the series leaves the SMA column entirely missing.
func AddMetrics(s *series.Series, window int) (*series.Series, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window %d: %w", window, series.ErrInvalidWindow)
	}
	closes, err := series.Close(s)
	if err != nil {
		return nil, err
	}
	filled := series.ForwardFill(closes)

	out := s.Clone()
	if err := out.SetColumn(series.ColReturn, DailyReturns(filled)); err != nil {
		return nil, err
	}
	if err := out.SetColumn(series.SMAColumn(window), RollingSMA(filled, window)); err != nil {
		return nil, err
	}
	return out, nil
}

// DailyReturns computes the fractional change between consecutive closes.
// The first entry is always missing; entries next to a missing close are
// missing.
func DailyReturns(closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		if i == 0 || series.IsMissing(closes[i]) || series.IsMissing(closes[i-1]) {
			out[i] = series.Missing()
			continue
		}
		out[i] = closes[i]/closes[i-1] - 1
	}
	return out
}

// RollingSMA computes the trailing simple moving average over the given
// window. Entries are missing until a full window of observations is
// available; a missing value anywhere in the window yields a missing
// average (no partial windows).
func RollingSMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i < window-1 {
			out[i] = series.Missing()
			continue
		}
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if series.IsMissing(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if !ok {
			out[i] = series.Missing()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}
