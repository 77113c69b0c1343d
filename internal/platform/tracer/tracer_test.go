package tracer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"gatehouse/internal/platform/tracer"
)

func TestNoopTracer(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanRegistrationSubmit,
		tracer.String(tracer.AttrConfidence, "high"),
		tracer.Bool("linked", true),
	)

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.String(tracer.AttrAction, "linked"))
	span.AddEvent(tracer.EventGuardPassed, tracer.Int64("count", 1))
	span.End(errors.New("boom"))
}

func TestOTelTracerWithNoopProvider(t *testing.T) {
	tr := tracer.NewOTel(tracer.WithOTelTracer(noop.NewTracerProvider().Tracer("test")))

	ctx, span := tr.Start(context.Background(), tracer.SpanStickerIssue,
		tracer.Int64(tracer.AttrCodeAttempts, 2),
		tracer.Float64("ratio", 0.5),
		tracer.Duration("elapsed", 150*time.Millisecond),
	)
	require.NotNil(t, ctx)
	span.AddEvent(tracer.EventAutoLinkFailed)
	span.End(nil)
}

func TestAttributeConstructors(t *testing.T) {
	assert.Equal(t, tracer.Attribute{Key: "k", Value: "v"}, tracer.String("k", "v"))
	assert.Equal(t, int64(42), tracer.Int64("n", 42).Value)
	assert.Equal(t, int64(150), tracer.Duration("latency", 150*time.Millisecond).Value)
}
