// Package series holds the date-indexed price table that flows through the
// analysis pipeline. Missing values are represented as NaN.
package series

import (
	"fmt"
	"math"
	"time"
)

// Well-known column names.
const (
	ColOpen     = "Open"
	ColHigh     = "High"
	ColLow      = "Low"
	ColClose    = "Close"
	ColAdjClose = "Adj Close"
	ColVolume   = "Volume"
	ColReturn   = "return_daily"
)

// SMAColumn returns the column name for a moving average of the given window.
func SMAColumn(window int) string {
	return fmt.Sprintf("SMA_%d", window)
}

// Series is a columnar table keyed by date. Columns keep insertion order so
// exports reproduce the upstream layout.
type Series struct {
	dates []time.Time
	order []string
	cols  map[string][]float64
}

// New creates an empty series over the given dates.
func New(dates []time.Time) *Series {
	return &Series{
		dates: dates,
		cols:  make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (s *Series) Len() int { return len(s.dates) }

// Dates returns the date index. Callers must not modify it.
func (s *Series) Dates() []time.Time { return s.dates }

// Date returns the date at row i.
func (s *Series) Date(i int) time.Time { return s.dates[i] }

// Columns returns column names in insertion order.
func (s *Series) Columns() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// HasColumn reports whether the named column exists.
func (s *Series) HasColumn(name string) bool {
	_, ok := s.cols[name]
	return ok
}

// Column returns the values of the named column. Callers must not modify
// the returned slice.
func (s *Series) Column(name string) ([]float64, bool) {
	v, ok := s.cols[name]
	return v, ok
}

// SetColumn adds or replaces a column. The value count must match the row
// count.
func (s *Series) SetColumn(name string, values []float64) error {
	if len(values) != len(s.dates) {
		return fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(s.dates))
	}
	if _, exists := s.cols[name]; !exists {
		s.order = append(s.order, name)
	}
	s.cols[name] = values
	return nil
}

// Clone returns a deep copy. Pipeline stages clone before appending columns
// so the input table is never mutated.
func (s *Series) Clone() *Series {
	out := &Series{
		dates: make([]time.Time, len(s.dates)),
		order: make([]string, len(s.order)),
		cols:  make(map[string][]float64, len(s.cols)),
	}
	copy(out.dates, s.dates)
	copy(out.order, s.order)
	for name, vals := range s.cols {
		c := make([]float64, len(vals))
		copy(c, vals)
		out.cols[name] = c
	}
	return out
}

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Missing is the sentinel stored for absent observations.
func Missing() float64 { return math.NaN() }
