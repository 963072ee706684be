// Package recorder persists a history of completed analysis runs.
package recorder

import "github.com/moniburnejko/stock-analysis-tool/internal/summary"

// RunRecord holds everything worth keeping about one completed run.
type RunRecord struct {
	Symbol    string
	Period    string
	Interval  string
	Window    int
	Summary   *summary.Summary
	CSVPath   string
	ChartPath string
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
