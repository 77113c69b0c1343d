package service

import (
	"log/slog"

	"gatehouse/internal/platform/tracer"
	"gatehouse/internal/vehicle/codegen"
	vehiclemetrics "gatehouse/internal/vehicle/metrics"
	"gatehouse/pkg/platform/audit"
)

type serviceConfig struct {
	logger      *slog.Logger
	auditor     audit.Emitter
	metrics     *vehiclemetrics.Metrics
	notifier    Notifier
	tracer      tracer.Tracer
	codeOptions []codegen.Option
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

func WithMetrics(m *vehiclemetrics.Metrics) Option {
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

// WithCodeOptions tunes the sticker code generator (prefix, attempts, randomness).
func WithCodeOptions(opts ...codegen.Option) Option {
	return func(c *serviceConfig) {
		c.codeOptions = append(c.codeOptions, opts...)
	}
}
