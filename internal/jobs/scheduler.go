package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/Tsouxd/reservation-lalilalou/config"
)

// Scheduler owns the single cron instance driving both background jobs. The
// SkipIfStillRunning wrapper gives each job the required guarantees: at most
// one execution at a time, and missed ticks are skipped rather than queued.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the reconciler on a fixed interval and the archiver
// on its daily cron expression.
func NewScheduler(cfg *config.JobsConfig, rec *Reconciler, arch *Archiver) (*Scheduler, error) {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	spec := fmt.Sprintf("@every %s", cfg.ReconcileInterval)
	if _, err := c.AddFunc(spec, func() {
		rec.RunOnce(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule reconciler: %w", err)
	}

	if _, err := c.AddFunc(cfg.ArchiveCron, func() {
		moved, err := arch.RunOnce(context.Background())
		if err != nil {
			log.Printf("archive: pass failed: %v", err)
			return
		}
		log.Printf("archive: moved %d rows", moved)
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule archiver: %w", err)
	}

	return &Scheduler{cron: c}, nil
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("job scheduler started")
}

// Stop halts scheduling and returns a context that is done once any running
// job has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
