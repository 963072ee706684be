package recorder

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniburnejko/stock-analysis-tool/internal/summary"
)

func testRecord() *RunRecord {
	return &RunRecord{
		Symbol:   "AMZN",
		Period:   "5y",
		Interval: "1d",
		Window:   20,
		Summary: &summary.Summary{
			Rows:               1258,
			StartDate:          "2019-08-26",
			EndDate:            "2024-08-23",
			StartPrice:         88.52,
			EndPrice:           177.04,
			TotalReturnPct:     100.0,
			DailyReturnMeanPct: 0.07,
			DailyReturnStdPct:  math.NaN(), // NaN must persist as NULL
			MinPrice:           81.43,
			MaxPrice:           191.7,
		},
		CSVPath:   "stock_data/AMZN.csv",
		ChartPath: "stock_data/AMZN_price_sma.png",
	}
}

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordRun(testRecord()))
	require.NoError(t, r.RecordRun(testRecord()))

	var count int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM run_history WHERE symbol = ?`, "AMZN").Scan(&count))
	assert.Equal(t, 2, count)

	var std any
	var total float64
	require.NoError(t, r.db.QueryRow(
		`SELECT daily_return_std_pct, total_return_pct FROM run_history LIMIT 1`).Scan(&std, &total))
	assert.Nil(t, std)
	assert.Equal(t, 100.0, total)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.RecordRun(testRecord()))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()

	var count int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM run_history`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNoopRecorder(t *testing.T) {
	n := NewNoopRecorder()
	assert.NoError(t, n.RecordRun(testRecord()))
	assert.NoError(t, n.Close())
}
