package series

import (
	"sort"
	"time"
)

// Normalize validates raw fetched data and returns a clean copy: rows where
// every column is missing are dropped, remaining rows are sorted ascending
// by date, and duplicate dates keep their first occurrence. The input is
// not modified.
//
// Fails with ErrEmptyData when the raw table has zero rows and with
// ErrAllMissing when nothing survives the all-missing filter. Downstream
// statistics rely on the chronological order (first row = earliest date),
// so sorting happens even when the source claims to be ordered.
func Normalize(raw *Series) (*Series, error) {
	if raw == nil || raw.Len() == 0 {
		return nil, ErrEmptyData
	}

	keep := make([]int, 0, raw.Len())
	for i := 0; i < raw.Len(); i++ {
		if !rowAllMissing(raw, i) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, ErrAllMissing
	}

	sort.SliceStable(keep, func(a, b int) bool {
		return raw.dates[keep[a]].Before(raw.dates[keep[b]])
	})

	// Drop duplicate dates, keeping the first occurrence.
	deduped := keep[:0]
	var prev time.Time
	for n, idx := range keep {
		if n > 0 && raw.dates[idx].Equal(prev) {
			continue
		}
		deduped = append(deduped, idx)
		prev = raw.dates[idx]
	}

	dates := make([]time.Time, len(deduped))
	for n, idx := range deduped {
		dates[n] = raw.dates[idx]
	}
	out := New(dates)
	for _, name := range raw.order {
		src := raw.cols[name]
		vals := make([]float64, len(deduped))
		for n, idx := range deduped {
			vals[n] = src[idx]
		}
		out.SetColumn(name, vals)
	}
	return out, nil
}

func rowAllMissing(s *Series, i int) bool {
	for _, name := range s.order {
		if !IsMissing(s.cols[name][i]) {
			return false
		}
	}
	return true
}

// Close derives the canonical close: the adjusted close where present,
// falling back row-wise to the raw close for rows where the adjusted value
// is missing. This is a per-row coalesce, not a column substitution; a row
// with a hole in "Adj Close" takes that row's own "Close".
func Close(s *Series) ([]float64, error) {
	adj, hasAdj := s.Column(ColAdjClose)
	raw, hasRaw := s.Column(ColClose)
	switch {
	case hasAdj && hasRaw:
		out := make([]float64, s.Len())
		for i := range out {
			if IsMissing(adj[i]) {
				out[i] = raw[i]
			} else {
				out[i] = adj[i]
			}
		}
		return out, nil
	case hasAdj:
		return copyValues(adj), nil
	case hasRaw:
		return copyValues(raw), nil
	default:
		return nil, ErrMissingPriceField
	}
}

// ForwardFill replaces each missing value with the last seen observation.
// Leading missing values stay missing.
func ForwardFill(values []float64) []float64 {
	out := make([]float64, len(values))
	last := Missing()
	for i, v := range values {
		if !IsMissing(v) {
			last = v
		}
		out[i] = last
	}
	return out
}

func copyValues(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	return out
}
