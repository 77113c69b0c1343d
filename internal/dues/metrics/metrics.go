package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

type Metrics struct {
	PaymentsSubmitted *prometheus.CounterVec
	Decisions         *prometheus.CounterVec
	AmountVerified    *prometheus.CounterVec
	LedgerUpdates     *prometheus.CounterVec
	LedgerReplays     prometheus.Counter
	Reconciled        prometheus.Counter
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PaymentsSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_payments_submitted_total",
			Help: "Payments submitted by residents by fee type",
		}, []string{"fee_type"}),
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_payment_decisions_total",
			Help: "Payment review decisions by outcome",
		}, []string{"outcome"}),
		AmountVerified: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_payment_amount_verified_total",
			Help: "Sum of verified payment amounts by fee type",
		}, []string{"fee_type"}),
		LedgerUpdates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_dues_ledger_updates_total",
			Help: "Ledger rows written by resulting status",
		}, []string{"status"}),
		LedgerReplays: f.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_dues_ledger_replays_total",
			Help: "Verified payments already present in the ledger",
		}),
		Reconciled: f.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_dues_ledger_reconciled_total",
			Help: "Ledger rows corrected by reconciliation",
		}),
	}
}

func (m *Metrics) IncrementSubmitted(feeType string) {
	m.PaymentsSubmitted.WithLabelValues(feeType).Inc()
}

func (m *Metrics) IncrementDecision(outcome string) {
	m.Decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddVerified(feeType string, amount decimal.Decimal) {
	m.AmountVerified.WithLabelValues(feeType).Add(amount.InexactFloat64())
}

func (m *Metrics) ObserveLedger(status string, applied bool) {
	if !applied {
		m.LedgerReplays.Inc()
		return
	}
	m.LedgerUpdates.WithLabelValues(status).Inc()
}

func (m *Metrics) AddReconciled(n int) {
	m.Reconciled.Add(float64(n))
}
