// Package tracer is the span abstraction used by the workflow services.
// OTelTracer forwards to OpenTelemetry; NoopTracer is the default when
// tracing is not configured.
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span; a non-nil err marks it failed.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanRegistrationSubmit  = "registration.submit"
	SpanRegistrationApprove = "registration.approve"
	SpanRegistrationReject  = "registration.reject"
	SpanVehicleApprove      = "vehicle.approve"
	SpanStickerIssue        = "sticker.issue"
	SpanPaymentVerify       = "payment.verify"
	SpanLedgerApply         = "ledger.apply"
)

// Attribute keys.
const (
	AttrAccountID    = "account_id"
	AttrRequestID    = "registration_id"
	AttrConfidence   = "match.confidence"
	AttrAction       = "action"
	AttrResidentID   = "resident_id"
	AttrStickerCode  = "sticker.code"
	AttrCodeAttempts = "sticker.attempts"
	AttrPaymentID    = "payment_id"
	AttrLedgerStatus = "ledger.status"
	AttrVehicleReq   = "vehicle_request_id"
)

// Event names.
const (
	EventAutoLinkFailed = "autolink.failed"
	EventGuardPassed    = "guard.passed"
	EventCodeCollided   = "sticker.code_collided"
	EventCompensated    = "vehicle.compensated"
)
