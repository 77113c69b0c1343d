package service

import (
	"log/slog"

	duesmetrics "gatehouse/internal/dues/metrics"
	"gatehouse/internal/platform/tracer"
	"gatehouse/pkg/platform/audit"
)

type serviceConfig struct {
	logger   *slog.Logger
	auditor  audit.Emitter
	metrics  *duesmetrics.Metrics
	notifier Notifier
	tracer   tracer.Tracer
	tx       StoreTx
}

// Option configures the Service.
type Option func(c *serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithAuditEmitter(emitter audit.Emitter) Option {
	return func(c *serviceConfig) {
		c.auditor = emitter
	}
}

func WithMetrics(m *duesmetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *serviceConfig) {
		c.notifier = n
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *serviceConfig) {
		c.tracer = t
	}
}

// WithTx sets the transaction runner used by verification and reconciliation.
func WithTx(tx StoreTx) Option {
	return func(c *serviceConfig) {
		c.tx = tx
	}
}
