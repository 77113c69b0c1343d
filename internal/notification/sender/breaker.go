package sender

import (
	"context"
	"errors"
	"log/slog"

	"gatehouse/internal/notification/models"
	"gatehouse/pkg/platform/circuit"
)

// ErrCircuitOpen is returned without calling the transport while it is
// considered down.
var ErrCircuitOpen = errors.New("notification transport circuit open")

// Transport is any sender that can be guarded.
type Transport interface {
	Send(ctx context.Context, msg models.Message) error
}

// GuardedSender short-circuits sends while the wrapped transport keeps failing,
// so a dead relay or broker does not tie up every queue worker for the full
// send timeout.
type GuardedSender struct {
	next    Transport
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(next Transport, breaker *circuit.Breaker, logger *slog.Logger) *GuardedSender {
	return &GuardedSender{next: next, breaker: breaker, logger: logger}
}

func (s *GuardedSender) Send(ctx context.Context, msg models.Message) error {
	if !s.breaker.Allow() {
		return ErrCircuitOpen
	}
	if err := s.next.Send(ctx, msg); err != nil {
		if change := s.breaker.RecordFailure(); change.Opened {
			s.logger.WarnContext(ctx, "notification transport circuit opened",
				"breaker", s.breaker.Name(), "error", err)
		}
		return err
	}
	if change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "notification transport circuit closed", "breaker", s.breaker.Name())
	}
	return nil
}
