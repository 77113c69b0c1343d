package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/platform/metrics"
)

type expirerFunc func(ctx context.Context) (int, error)

func (f expirerFunc) ExpireStickers(ctx context.Context) (int, error) { return f(ctx) }

type reconcilerFunc func(ctx context.Context, year int) (int, error)

func (f reconcilerFunc) Reconcile(ctx context.Context, year int) (int, error) { return f(ctx, year) }

func newTestScheduler() (*Scheduler, *metrics.Metrics) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(WithLogger(logger), WithMetrics(m)), m
}

func TestAddRejectsInvalidSchedule(t *testing.T) {
	s, _ := newTestScheduler()
	err := s.Add(Job{Name: "bad", Schedule: "every tuesday", Run: func(context.Context) error { return nil }})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestRunRecordsOutcome(t *testing.T) {
	s, m := newTestScheduler()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var reconciledYear = -1
	reconcile := LedgerReconcileJob("@daily", reconcilerFunc(func(_ context.Context, year int) (int, error) {
		reconciledYear = year
		return 3, nil
	}), logger)
	require.NoError(t, s.Add(reconcile))
	require.NoError(t, s.run(withTimeout(reconcile)))
	assert.Equal(t, 0, reconciledYear, "reconciliation targets the current year")

	expiry := StickerExpiryJob("@daily", expirerFunc(func(context.Context) (int, error) {
		return 0, errors.New("database unavailable")
	}), logger)
	assert.Error(t, s.run(withTimeout(expiry)))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues(JobLedgerReconcile, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues(JobStickerExpiry, "error")))
}

func TestStopCancelsRunningJobs(t *testing.T) {
	s, _ := newTestScheduler()
	started := make(chan struct{})
	finished := make(chan error, 1)
	job := Job{Name: "slow", Timeout: time.Minute, Run: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}}
	go func() { finished <- s.run(job) }()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	select {
	case err := <-finished:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("job did not observe cancellation")
	}
}

func withTimeout(j Job) Job {
	j.Timeout = time.Second
	return j
}
