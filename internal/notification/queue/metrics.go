package queue

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gatehouse/internal/notification/models"
)

type Metrics struct {
	Enqueued     *prometheus.CounterVec
	Dropped      *prometheus.CounterVec
	Sent         *prometheus.CounterVec
	SendDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Enqueued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_notifications_enqueued_total",
			Help: "Notifications accepted by the dispatch queue",
		}, []string{"kind"}),
		Dropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_notifications_dropped_total",
			Help: "Notifications dropped because the queue was full",
		}, []string{"kind"}),
		Sent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_notifications_sent_total",
			Help: "Notification send attempts by outcome",
		}, []string{"kind", "outcome"}),
		SendDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatehouse_notification_send_duration_seconds",
			Help:    "Duration of a single sender call",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) observe(kind models.Kind, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Sent.WithLabelValues(string(kind), outcome).Inc()
	m.SendDuration.Observe(d.Seconds())
}
