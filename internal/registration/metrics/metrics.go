package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Submissions     *prometheus.CounterVec
	Decisions       *prometheus.CounterVec
	AutoLinkFailed  prometheus.Counter
	ApproveDuration prometheus.Histogram
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_registration_submissions_total",
			Help: "Registration submissions by match confidence and resulting action",
		}, []string{"confidence", "action"}),
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_registration_decisions_total",
			Help: "Staff review decisions by outcome",
		}, []string{"outcome"}),
		AutoLinkFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_registration_autolink_failures_total",
			Help: "High-confidence matches that fell back to manual review",
		}),
		ApproveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatehouse_registration_approve_duration_seconds",
			Help:    "Duration of the approval transaction",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementSubmission(confidence, action string) {
	m.Submissions.WithLabelValues(confidence, action).Inc()
}

func (m *Metrics) IncrementDecision(outcome string) {
	m.Decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementAutoLinkFailed() {
	m.AutoLinkFailed.Inc()
}

func (m *Metrics) ObserveApprove(start time.Time) {
	m.ApproveDuration.Observe(time.Since(start).Seconds())
}
