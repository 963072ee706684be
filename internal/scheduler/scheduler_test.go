package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniburnejko/stock-analysis-tool/internal/collector"
	"github.com/moniburnejko/stock-analysis-tool/internal/config"
	"github.com/moniburnejko/stock-analysis-tool/internal/recorder"
	"github.com/moniburnejko/stock-analysis-tool/internal/report"
)

func testRunner(t *testing.T) *report.Runner {
	t.Helper()
	cfg := &config.Config{
		Ticker:    "TEST",
		Period:    "1y",
		Interval:  "1d",
		SMAWindow: 2,
		OutDir:    t.TempDir(),
	}
	return report.New(cfg, &collector.MockFetcher{Price: 100}, recorder.NewNoopRecorder())
}

func TestRegister(t *testing.T) {
	s := New(testRunner(t))
	require.NoError(t, s.Register("0 0 18 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)
}

func TestRegister_InvalidSpec(t *testing.T) {
	s := New(testRunner(t))
	assert.Error(t, s.Register("not a cron spec"))
}
