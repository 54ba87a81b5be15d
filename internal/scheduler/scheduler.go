// Package scheduler runs the periodic maintenance jobs: the announcement
// expiry sweep and the system log purge.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/metrics"
	"github.com/robfig/cron/v3"
)

// JobFunc performs one run and reports how many rows it removed.
type JobFunc func(ctx context.Context) (int64, error)

type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler that evaluates five-field cron expressions in UTC.
// Runs of the same job never overlap.
func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})),
	)
	return &Scheduler{cron: c, ctx: ctx, cancel: cancel}
}

// Add registers fn under name. A failed run is logged and retried at the
// next scheduled time.
func (s *Scheduler) Add(name, schedule string, fn JobFunc) error {
	if _, err := s.cron.AddFunc(schedule, func() { s.run(name, fn) }); err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", schedule, name, err)
	}
	slog.Info("job scheduled", "job", name, "schedule", schedule)
	return nil
}

func (s *Scheduler) run(name string, fn JobFunc) {
	start := time.Now()
	n, err := fn(s.ctx)
	metrics.RecordJob(name, n, err)
	if err != nil {
		slog.Error("scheduled job failed", "operation", name, "error", err.Error())
		return
	}
	slog.Info("scheduled job completed", "job", name, "deleted", n, "latency_ms", time.Since(start).Milliseconds())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish, then cancels their context.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.cancel()
}

// cronLogger routes cron's internal messages to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err.Error())...)
}
