package service

import (
	"log/slog"

	"gatehouse/internal/platform/tracer"
	registrationmetrics "gatehouse/internal/registration/metrics"
	"gatehouse/pkg/platform/audit"
)

// serviceConfig holds optional dependencies.
type serviceConfig struct {
	logger   *slog.Logger
	auditor  audit.Emitter
	metrics  *registrationmetrics.Metrics
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

func WithMetrics(m *registrationmetrics.Metrics) Option {
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

// WithTx sets the transaction runner. The default serializes through an
// in-memory lock, which is only correct for in-memory stores.
func WithTx(tx StoreTx) Option {
	return func(c *serviceConfig) {
		c.tx = tx
	}
}
