// Package scheduler runs the report on a cron schedule when the tool is
// configured as a repeating job instead of a one-shot run.
package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/moniburnejko/stock-analysis-tool/internal/report"
)

// Scheduler wraps a cron instance around the report runner.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *report.Runner
}

// New creates a Scheduler. Cron specs use the six-field form with seconds.
func New(runner *report.Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: runner,
	}
}

// Register adds the report job under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() {
		log.Println("[INFO] running scheduled report")
		if err := s.Runner.Run(); err != nil {
			log.Printf("[ERROR] scheduled run: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}
