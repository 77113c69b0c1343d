package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests        prometheus.Counter
	Decisions       *prometheus.CounterVec
	StickersIssued  *prometheus.CounterVec
	CodeAttempts    prometheus.Histogram
	CodeCollisions  prometheus.Counter
	StickersExpired prometheus.Counter
	Compensations   prometheus.Counter
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_vehicle_requests_total",
			Help: "Vehicle sticker requests submitted by residents",
		}),
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_vehicle_decisions_total",
			Help: "Vehicle request review decisions by outcome",
		}, []string{"outcome"}),
		StickersIssued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_stickers_issued_total",
			Help: "Stickers issued by path (request or direct)",
		}, []string{"path"}),
		CodeAttempts: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatehouse_sticker_code_attempts",
			Help:    "Generator attempts needed per issued code",
			Buckets: []float64{1, 2, 3, 4, 5},
		}),
		CodeCollisions: f.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_sticker_code_exhausted_total",
			Help: "Codes accepted after every generator attempt collided",
		}),
		StickersExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_stickers_expired_total",
			Help: "Stickers moved to EXPIRED by the sweep",
		}),
		Compensations: f.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_vehicle_compensations_total",
			Help: "Vehicles deleted after sticker creation failed",
		}),
	}
}

func (m *Metrics) IncrementRequest() {
	m.Requests.Inc()
}

func (m *Metrics) IncrementDecision(outcome string) {
	m.Decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveIssued(path string, attempts int, collided bool) {
	m.StickersIssued.WithLabelValues(path).Inc()
	m.CodeAttempts.Observe(float64(attempts))
	if collided {
		m.CodeCollisions.Inc()
	}
}

func (m *Metrics) AddExpired(n int) {
	m.StickersExpired.Add(float64(n))
}

func (m *Metrics) IncrementCompensation() {
	m.Compensations.Inc()
}
