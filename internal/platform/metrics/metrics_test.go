package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveJob(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveJob("sticker_expiry", time.Now(), nil)
	m.ObserveJob("sticker_expiry", time.Now(), errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("sticker_expiry", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("sticker_expiry", "error")))
	assert.Positive(t, testutil.ToFloat64(m.JobLastRun.WithLabelValues("sticker_expiry")))
}

func TestSetPending(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())
	m.SetPending("registrations", 4)
	m.SetPending("registrations", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PendingQueues.WithLabelValues("registrations")))
}
