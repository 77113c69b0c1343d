package sender

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gatehouse/internal/notification/models"
	"gatehouse/pkg/platform/circuit"
)

type flakyTransport struct {
	calls int
	err   error
}

func (f *flakyTransport) Send(context.Context, models.Message) error {
	f.calls++
	return f.err
}

func TestGuardedSender(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	transport := &flakyTransport{err: errors.New("relay returned 502")}
	breaker := circuit.New("relay",
		circuit.WithFailureThreshold(2),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	s := NewGuarded(transport, breaker, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	assert.Error(t, s.Send(ctx, message()))
	assert.Error(t, s.Send(ctx, message()))
	assert.ErrorIs(t, s.Send(ctx, message()), ErrCircuitOpen)
	assert.Equal(t, 2, transport.calls, "open circuit skips the transport")

	now = now.Add(time.Minute)
	transport.err = nil
	assert.NoError(t, s.Send(ctx, message()))
	assert.Equal(t, circuit.StateClosed, breaker.State())
	assert.Equal(t, 3, transport.calls)
}
