package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// PassRunner executes one sync pass
type PassRunner interface {
	RunOnce(ctx context.Context) error
}

// SyncScheduler triggers orchestrator passes on a fixed cron schedule.
// Each pass runs on its own goroutine (cron's default), so a pass that
// overruns the interval simply overlaps the next one; the store's
// uniqueness guarantee keeps overlapping passes consistent.
type SyncScheduler struct {
	runner PassRunner
	spec   string
	cron   *cron.Cron
}

// NewSyncScheduler creates a new scheduler; spec is a standard 5-field
// cron expression, e.g. "*/1 * * * *"
func NewSyncScheduler(runner PassRunner, spec string) *SyncScheduler {
	if spec == "" {
		spec = "*/1 * * * *"
	}
	return &SyncScheduler{
		runner: runner,
		spec:   spec,
		cron:   cron.New(),
	}
}

// Start registers the cron entry, fires one pass immediately, and
// begins the schedule
func (s *SyncScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runPass()
	})
	if err != nil {
		return err
	}

	log.Printf("[Scheduler] Starting sync scheduler (cron: %s)", s.spec)

	// Run immediately once at startup, then on schedule
	go s.runPass()
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for in-flight passes to finish
func (s *SyncScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[Scheduler] Sync scheduler stopped")
}

func (s *SyncScheduler) runPass() {
	if err := s.runner.RunOnce(context.Background()); err != nil {
		log.Printf("[Scheduler] Sync pass failed: %v", err)
	}
}
