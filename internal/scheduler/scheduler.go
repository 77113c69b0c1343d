// Package scheduler runs the periodic maintenance jobs: the sticker expiry
// sweep and the dues ledger reconciliation.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"gatehouse/internal/platform/metrics"
)

// Job is a named unit of periodic work.
type Job struct {
	Name     string
	Schedule string
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

const defaultJobTimeout = 5 * time.Minute

type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *metrics.Metrics
	base    context.Context
	cancel  context.CancelFunc
}

type Option func(*Scheduler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// New builds a scheduler whose jobs never overlap with themselves and whose
// panics are recovered and logged.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn))
	s.cron = cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))
	s.base, s.cancel = context.WithCancel(context.Background())
	return s
}

// Add registers a job. An invalid schedule is returned as an error.
func (s *Scheduler) Add(job Job) error {
	if job.Timeout <= 0 {
		job.Timeout = defaultJobTimeout
	}
	if _, err := s.cron.AddFunc(job.Schedule, func() { s.run(job) }); err != nil {
		return fmt.Errorf("schedule job %s: %w", job.Name, err)
	}
	s.logger.Info("scheduled job", "job", job.Name, "schedule", job.Schedule)
	return nil
}

func (s *Scheduler) run(job Job) error {
	ctx, cancel := context.WithTimeout(s.base, job.Timeout)
	defer cancel()

	started := time.Now()
	err := job.Run(ctx)
	if s.metrics != nil {
		s.metrics.ObserveJob(job.Name, started, err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled job failed", "job", job.Name, "error", err)
		return err
	}
	s.logger.InfoContext(ctx, "scheduled job finished", "job", job.Name,
		"duration_ms", time.Since(started).Milliseconds())
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs, cancels in-flight jobs and waits for them up to the
// deadline of ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
