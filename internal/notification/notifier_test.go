package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/notification/models"
	"gatehouse/pkg/requestcontext"
)

type captureQueue struct {
	msgs []models.Message
	err  error
}

func (q *captureQueue) Enqueue(_ context.Context, msg models.Message) error {
	if q.err != nil {
		return q.err
	}
	q.msgs = append(q.msgs, msg)
	return nil
}

func TestNotifier(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("registration approved", func(t *testing.T) {
		q := &captureQueue{}
		New(q, "office@gatehouse.test", "https://portal.test", logger).RegistrationApproved(ctx, "a@x.com", "Jane")

		require.Len(t, q.msgs, 1)
		msg := q.msgs[0]
		assert.Equal(t, models.KindRegistrationApproved, msg.Kind)
		assert.Equal(t, "office@gatehouse.test", msg.From)
		assert.Contains(t, msg.Body, "https://portal.test")
		assert.Equal(t, now, msg.CreatedAt)
		assert.NotEmpty(t, msg.ID)
	})

	t.Run("payment amounts render with two decimals", func(t *testing.T) {
		q := &captureQueue{}
		New(q, "", "", logger).PaymentVerified(ctx, "a@x.com", decimal.NewFromInt(1000), 2025)
		require.Len(t, q.msgs, 1)
		assert.Equal(t, "1000.00", q.msgs[0].Data["amount"])
		assert.Equal(t, "2025", q.msgs[0].Data["year"])
	})

	t.Run("missing recipient is skipped", func(t *testing.T) {
		q := &captureQueue{}
		New(q, "", "", logger).VehicleRejected(ctx, "", "ABC123", "blurry OR")
		assert.Empty(t, q.msgs)
	})

	t.Run("queue failure does not surface", func(t *testing.T) {
		q := &captureQueue{err: errors.New("notification queue full")}
		assert.NotPanics(t, func() {
			New(q, "", "", logger).RegistrationRejected(ctx, "a@x.com", "Jane", "no documents")
		})
	})
}
