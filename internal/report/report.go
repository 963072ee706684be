// Package report sequences one end-to-end analysis run.
package report

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/moniburnejko/stock-analysis-tool/internal/calculator"
	"github.com/moniburnejko/stock-analysis-tool/internal/collector"
	"github.com/moniburnejko/stock-analysis-tool/internal/config"
	"github.com/moniburnejko/stock-analysis-tool/internal/exporter"
	"github.com/moniburnejko/stock-analysis-tool/internal/notifier"
	"github.com/moniburnejko/stock-analysis-tool/internal/recorder"
	"github.com/moniburnejko/stock-analysis-tool/internal/render"
	"github.com/moniburnejko/stock-analysis-tool/internal/series"
	"github.com/moniburnejko/stock-analysis-tool/internal/summary"
)

// Notifier delivers the run summary after a successful run. Optional.
type Notifier interface {
	Send(text string) error
}

// Runner executes the fetch → normalize → compute → persist → render →
// summarize sequence for one configuration. Stages run strictly in order;
// the first failure ends the run with a stage-tagged error and later
// stages are never attempted.
type Runner struct {
	Cfg      *config.Config
	Fetcher  collector.Fetcher
	Recorder recorder.Recorder
	Notifier Notifier  // nil disables summary delivery
	Theme    render.Theme
	Out      io.Writer // defaults to os.Stdout
}

// New creates a Runner with the default theme and stdout output.
func New(cfg *config.Config, fetcher collector.Fetcher, rec recorder.Recorder) *Runner {
	return &Runner{
		Cfg:      cfg,
		Fetcher:  fetcher,
		Recorder: rec,
		Theme:    render.DefaultTheme(),
		Out:      os.Stdout,
	}
}

// Run executes one full report. It prints the informational and
// confirmation lines of the console contract; on failure the returned
// error names the failing stage and cause, leaving the single [ERROR] line
// to the caller.
func (r *Runner) Run() error {
	cfg := r.Cfg
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "[INFO] Analyzing %s | Period: %s | Interval: %s\n",
		cfg.Ticker, cfg.Period, cfg.Interval)

	raw, err := r.Fetcher.FetchHistory(cfg.Ticker, cfg.Period, cfg.Interval)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", cfg.Ticker, err)
	}

	norm, err := series.Normalize(raw)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", cfg.Ticker, err)
	}

	enriched, err := calculator.AddMetrics(norm, cfg.SMAWindow)
	if err != nil {
		return fmt.Errorf("compute metrics for %s: %w", cfg.Ticker, err)
	}

	csvPath := cfg.CSVPath()
	if err := exporter.WriteCSV(enriched, csvPath); err != nil {
		return fmt.Errorf("save %s: %w", cfg.Ticker, err)
	}
	fmt.Fprintf(out, "[OK] Saved: %s\n", csvPath)

	chartPath := cfg.ChartPath()
	if err := render.Chart(enriched, cfg.Ticker, cfg.SMAWindow, chartPath, r.Theme); err != nil {
		return fmt.Errorf("render chart for %s: %w", cfg.Ticker, err)
	}
	fmt.Fprintf(out, "[OK] Saved: %s\n", chartPath)

	sum, err := summary.Summarize(enriched)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", cfg.Ticker, err)
	}
	fmt.Fprint(out, sum.Format())

	// Supplementary deliveries are best-effort; the report already
	// succeeded.
	if r.Recorder != nil {
		rec := &recorder.RunRecord{
			Symbol:    cfg.Ticker,
			Period:    cfg.Period,
			Interval:  cfg.Interval,
			Window:    cfg.SMAWindow,
			Summary:   sum,
			CSVPath:   csvPath,
			ChartPath: chartPath,
		}
		if err := r.Recorder.RecordRun(rec); err != nil {
			log.Printf("[WARN] record run: %v", err)
		}
	}
	if r.Notifier != nil {
		msg := notifier.FormatRunReport(cfg.Ticker, sum, csvPath, chartPath)
		if err := r.Notifier.Send(msg); err != nil {
			log.Printf("[WARN] send summary: %v", err)
		}
	}
	if cfg.ShowPlot {
		if err := render.Show(chartPath); err != nil {
			log.Printf("[WARN] show plot: %v", err)
		}
	}

	return nil
}
