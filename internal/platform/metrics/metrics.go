// Package metrics holds process-wide Prometheus metrics that do not belong to
// a single domain module: background jobs and the staff work queues.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	JobRuns       *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec
	JobLastRun    *prometheus.GaugeVec
	PendingQueues *prometheus.GaugeVec
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		JobRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_job_runs_total",
			Help: "Scheduled job runs by job and outcome",
		}, []string{"job", "outcome"}),
		JobDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gatehouse_job_duration_seconds",
			Help:    "Duration of scheduled job runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		}, []string{"job"}),
		JobLastRun: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gatehouse_job_last_run_timestamp_seconds",
			Help: "Unix time of the last successful run per job",
		}, []string{"job"}),
		PendingQueues: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gatehouse_pending_items",
			Help: "Items waiting for staff review by queue",
		}, []string{"queue"}),
	}
}

// ObserveJob records one run of a scheduled job.
func (m *Metrics) ObserveJob(job string, started time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	} else {
		m.JobLastRun.WithLabelValues(job).Set(float64(time.Now().Unix()))
	}
	m.JobRuns.WithLabelValues(job, outcome).Inc()
	m.JobDuration.WithLabelValues(job).Observe(time.Since(started).Seconds())
}

func (m *Metrics) SetPending(queue string, n int) {
	m.PendingQueues.WithLabelValues(queue).Set(float64(n))
}
