package collector

import (
	"time"

	"github.com/moniburnejko/stock-analysis-tool/internal/series"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series *series.Series
	Err    error
	Price  float64 // base price for generated bars when Series is nil
	Bars   int     // generated bar count, default 120
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_, _, _ string) (*series.Series, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Series != nil {
		return m.Series, nil
	}
	count := m.Bars
	if count <= 0 {
		count = 120
	}
	return GenerateBars(m.Price, count), nil
}

// GenerateBars builds a synthetic daily series drifting around basePrice.
func GenerateBars(basePrice float64, count int) *series.Series {
	dates := make([]time.Time, count)
	open := make([]float64, count)
	high := make([]float64, count)
	low := make([]float64, count)
	cls := make([]float64, count)
	adj := make([]float64, count)
	vol := make([]float64, count)

	start := time.Now().UTC().AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		dates[i] = start.AddDate(0, 0, i)
		open[i] = p * 0.999
		high[i] = p * 1.005
		low[i] = p * 0.995
		cls[i] = p
		adj[i] = p
		vol[i] = 1000000
	}

	s := series.New(dates)
	s.SetColumn(series.ColOpen, open)
	s.SetColumn(series.ColHigh, high)
	s.SetColumn(series.ColLow, low)
	s.SetColumn(series.ColClose, cls)
	s.SetColumn(series.ColAdjClose, adj)
	s.SetColumn(series.ColVolume, vol)
	return s
}
