package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniburnejko/stock-analysis-tool/internal/series"
)

func buildSeries(t *testing.T, closes, adj []float64) *series.Series {
	t.Helper()
	dates := make([]time.Time, len(closes))
	for i := range dates {
		dates[i] = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
	}
	s := series.New(dates)
	require.NoError(t, s.SetColumn(series.ColClose, closes))
	if adj != nil {
		require.NoError(t, s.SetColumn(series.ColAdjClose, adj))
	}
	return s
}

func TestAddMetrics_SpecExample(t *testing.T) {
	vals := []float64{10, 20, 30, 40, 50}
	s := buildSeries(t, vals, []float64{10, 20, 30, 40, 50})

	out, err := AddMetrics(s, 2)
	require.NoError(t, err)

	assert.True(t, out.HasColumn(series.ColReturn))
	assert.True(t, out.HasColumn("SMA_2"))

	sma, _ := out.Column("SMA_2")
	assert.InDelta(t, 45, sma[len(sma)-1], 1e-9)
}

func TestAddMetrics_ConstantPrice(t *testing.T) {
	const p = 42.0
	closes := []float64{p, p, p, p, p, p}
	s := buildSeries(t, closes, nil)

	out, err := AddMetrics(s, 3)
	require.NoError(t, err)

	ret, _ := out.Column(series.ColReturn)
	assert.True(t, series.IsMissing(ret[0]))
	for _, v := range ret[1:] {
		assert.InDelta(t, 0, v, 1e-12)
	}

	sma, _ := out.Column("SMA_3")
	for i, v := range sma {
		if i < 2 {
			assert.True(t, series.IsMissing(v), "index %d", i)
		} else {
			assert.InDelta(t, p, v, 1e-12, "index %d", i)
		}
	}
}

func TestAddMetrics_TailCount(t *testing.T) {
	const l, w = 10, 4
	closes := make([]float64, l)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	s := buildSeries(t, closes, nil)

	out, err := AddMetrics(s, w)
	require.NoError(t, err)

	sma, _ := out.Column("SMA_4")
	present := 0
	for _, v := range sma {
		if !series.IsMissing(v) {
			present++
		}
	}
	assert.Equal(t, l-w+1, present)
	// All present entries sit at the tail.
	for i := w - 1; i < l; i++ {
		assert.False(t, series.IsMissing(sma[i]), "index %d", i)
	}
}

func TestAddMetrics_PreservesRowsAndInput(t *testing.T) {
	closes := []float64{10, 20, 30}
	s := buildSeries(t, closes, nil)

	out, err := AddMetrics(s, 2)
	require.NoError(t, err)

	assert.Equal(t, s.Len(), out.Len())
	assert.Equal(t, []string{series.ColClose}, s.Columns())
	assert.Equal(t, []string{series.ColClose, series.ColReturn, "SMA_2"}, out.Columns())
}

func TestAddMetrics_RejectsNonPositiveWindow(t *testing.T) {
	s := buildSeries(t, []float64{10, 20}, nil)

	_, err := AddMetrics(s, 0)
	assert.ErrorIs(t, err, series.ErrInvalidWindow)

	_, err = AddMetrics(s, -3)
	assert.ErrorIs(t, err, series.ErrInvalidWindow)
}

func TestAddMetrics_WindowLargerThanSeries(t *testing.T) {
	s := buildSeries(t, []float64{10, 20, 30}, nil)

	out, err := AddMetrics(s, 10)
	require.NoError(t, err)

	sma, _ := out.Column("SMA_10")
	for i, v := range sma {
		assert.True(t, series.IsMissing(v), "index %d", i)
	}
}

func TestAddMetrics_MissingBothPriceFields(t *testing.T) {
	dates := []time.Time{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := series.New(dates)
	require.NoError(t, s.SetColumn(series.ColOpen, []float64{1}))

	_, err := AddMetrics(s, 2)
	assert.ErrorIs(t, err, series.ErrMissingPriceField)
}

func TestDailyReturns_ForwardFilledHole(t *testing.T) {
	// 10, hole, 12: after forward fill the hole becomes 10, so the return
	// when data resumes is 12/10-1, not a spike off the raw gap.
	closes := []float64{10, series.Missing(), 12}
	s := buildSeries(t, closes, nil)

	out, err := AddMetrics(s, 2)
	require.NoError(t, err)

	ret, _ := out.Column(series.ColReturn)
	assert.True(t, series.IsMissing(ret[0]))
	assert.InDelta(t, 0, ret[1], 1e-12)
	assert.InDelta(t, 0.2, ret[2], 1e-12)
}

func TestRollingSMA_MissingPoisonsWindow(t *testing.T) {
	vals := []float64{1, series.Missing(), 3, 4, 5}
	sma := RollingSMA(vals, 2)

	assert.True(t, series.IsMissing(sma[0]))
	assert.True(t, series.IsMissing(sma[1]))
	assert.True(t, series.IsMissing(sma[2]))
	assert.InDelta(t, 3.5, sma[3], 1e-12)
	assert.InDelta(t, 4.5, sma[4], 1e-12)
}
