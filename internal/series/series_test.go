package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func days(n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = day(i)
	}
	return out
}

func TestNormalize_EmptyData(t *testing.T) {
	_, err := Normalize(New(nil))
	assert.ErrorIs(t, err, ErrEmptyData)

	_, err = Normalize(nil)
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestNormalize_AllMissing(t *testing.T) {
	s := New(days(3))
	require.NoError(t, s.SetColumn(ColClose, []float64{Missing(), Missing(), Missing()}))
	require.NoError(t, s.SetColumn(ColVolume, []float64{Missing(), Missing(), Missing()}))

	_, err := Normalize(s)
	assert.ErrorIs(t, err, ErrAllMissing)
}

func TestNormalize_DropsFullyMissingRowsOnly(t *testing.T) {
	s := New(days(3))
	require.NoError(t, s.SetColumn(ColClose, []float64{10, Missing(), 12}))
	require.NoError(t, s.SetColumn(ColVolume, []float64{100, Missing(), Missing()}))

	out, err := Normalize(s)
	require.NoError(t, err)
	// Row 1 is entirely missing and goes; row 2 keeps its partial data.
	assert.Equal(t, 2, out.Len())
	closes, _ := out.Column(ColClose)
	assert.Equal(t, []float64{10, 12}, closes)
	vol, _ := out.Column(ColVolume)
	assert.Equal(t, 100.0, vol[0])
	assert.True(t, IsMissing(vol[1]))
}

func TestNormalize_SortsChronologically(t *testing.T) {
	s := New([]time.Time{day(2), day(0), day(1)})
	require.NoError(t, s.SetColumn(ColClose, []float64{12, 10, 11}))

	out, err := Normalize(s)
	require.NoError(t, err)
	closes, _ := out.Column(ColClose)
	assert.Equal(t, []float64{10, 11, 12}, closes)
	assert.True(t, out.Date(0).Before(out.Date(1)))
	assert.True(t, out.Date(1).Before(out.Date(2)))
}

func TestNormalize_DeduplicatesDates(t *testing.T) {
	s := New([]time.Time{day(0), day(0), day(1)})
	require.NoError(t, s.SetColumn(ColClose, []float64{10, 99, 11}))

	out, err := Normalize(s)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	closes, _ := out.Column(ColClose)
	assert.Equal(t, []float64{10, 11}, closes)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	s := New([]time.Time{day(1), day(0)})
	require.NoError(t, s.SetColumn(ColClose, []float64{11, 10}))

	_, err := Normalize(s)
	require.NoError(t, err)
	closes, _ := s.Column(ColClose)
	assert.Equal(t, []float64{11, 10}, closes)
	assert.Equal(t, day(1), s.Date(0))
}

func TestClose_CoalescesRowWise(t *testing.T) {
	s := New(days(3))
	require.NoError(t, s.SetColumn(ColClose, []float64{10, 20, 30}))
	require.NoError(t, s.SetColumn(ColAdjClose, []float64{9, Missing(), 27}))

	closes, err := Close(s)
	require.NoError(t, err)
	// The row with a missing adjusted value takes its own raw close, not a
	// carried-forward adjusted one.
	assert.Equal(t, []float64{9, 20, 27}, closes)
}

func TestClose_SingleColumnFallbacks(t *testing.T) {
	onlyClose := New(days(2))
	require.NoError(t, onlyClose.SetColumn(ColClose, []float64{10, 20}))
	closes, err := Close(onlyClose)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, closes)

	onlyAdj := New(days(2))
	require.NoError(t, onlyAdj.SetColumn(ColAdjClose, []float64{9, 19}))
	closes, err = Close(onlyAdj)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 19}, closes)
}

func TestClose_MissingBothPriceFields(t *testing.T) {
	s := New(days(3))
	require.NoError(t, s.SetColumn(ColOpen, []float64{1, 2, 3}))

	_, err := Close(s)
	assert.ErrorIs(t, err, ErrMissingPriceField)
}

func TestForwardFill(t *testing.T) {
	in := []float64{Missing(), 10, Missing(), Missing(), 13}
	out := ForwardFill(in)

	assert.True(t, IsMissing(out[0]))
	assert.Equal(t, []float64{10, 10, 10, 13}, out[1:])
	// Input untouched.
	assert.True(t, math.IsNaN(in[2]))
}

func TestClone_IsDeep(t *testing.T) {
	s := New(days(2))
	require.NoError(t, s.SetColumn(ColClose, []float64{10, 20}))

	c := s.Clone()
	vals, _ := c.Column(ColClose)
	vals[0] = 99

	orig, _ := s.Column(ColClose)
	assert.Equal(t, 10.0, orig[0])
}

func TestSetColumn_LengthMismatch(t *testing.T) {
	s := New(days(2))
	err := s.SetColumn(ColClose, []float64{1})
	assert.Error(t, err)
}
