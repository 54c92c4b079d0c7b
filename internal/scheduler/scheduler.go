// Package scheduler runs a named job on a fixed interval with single-flight
// semantics: if a run is still in progress when the next tick fires, the
// tick is skipped rather than queued.
package scheduler

import (
	"context"
	"sync"
	"time"

	"lakshmi/internal/logger"
)

// Job is a unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface.
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

func (j JobFunc) Name() string                  { return j.JobName }
func (j JobFunc) Run(ctx context.Context) error { return j.Fn(ctx) }

// Runner executes a job on an interval until its context is cancelled.
type Runner struct {
	job      Job
	interval time.Duration
	mu       sync.Mutex
}

// NewRunner creates a Runner for the given job and interval.
func NewRunner(job Job, interval time.Duration) *Runner {
	return &Runner{job: job, interval: interval}
}

// Start runs the job once immediately, then on every tick, blocking until
// ctx is cancelled. Overlapping runs are skipped, not queued.
func (r *Runner) Start(ctx context.Context) {
	log := logger.Get()
	log.Infow("scheduler started", "job", r.job.Name(), "interval", r.interval.String())

	r.runOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Infow("scheduler stopped", "job", r.job.Name())
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	log := logger.Get()
	if !r.mu.TryLock() {
		log.Warnw("previous run still in progress, skipping tick", "job", r.job.Name())
		return
	}
	defer r.mu.Unlock()

	start := time.Now()
	if err := r.job.Run(ctx); err != nil {
		log.Errorw("job run failed", "job", r.job.Name(), "error", err)
		return
	}
	log.Infow("job run complete", "job", r.job.Name(), "duration_ms", time.Since(start).Milliseconds())
}
