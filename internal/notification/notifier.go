// Package notification renders workflow notifications and hands them to the
// dispatch queue. Every call is best effort: failures are logged and dropped.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gatehouse/internal/notification/models"
	"gatehouse/pkg/requestcontext"
)

// Enqueuer accepts messages for background delivery.
type Enqueuer interface {
	Enqueue(ctx context.Context, msg models.Message) error
}

type Notifier struct {
	queue     Enqueuer
	from      string
	portalURL string
	logger    *slog.Logger
}

func New(queue Enqueuer, from, portalURL string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{queue: queue, from: from, portalURL: portalURL, logger: logger}
}

func (n *Notifier) RegistrationApproved(ctx context.Context, to, name string) {
	n.send(ctx, models.KindRegistrationApproved, to,
		"Your Gatehouse registration was approved",
		fmt.Sprintf("Hi %s,\n\nYour account is now linked to your unit. Sign in at %s.", name, n.portalURL),
		nil)
}

func (n *Notifier) RegistrationRejected(ctx context.Context, to, name, reason string) {
	body := fmt.Sprintf("Hi %s,\n\nWe could not verify your registration.", name)
	if reason != "" {
		body += "\nReason: " + reason
	}
	n.send(ctx, models.KindRegistrationRejected, to, "Your Gatehouse registration was not approved", body,
		map[string]string{"reason": reason})
}

func (n *Notifier) VehicleApproved(ctx context.Context, to, plate, code string, expiresAt time.Time) {
	n.send(ctx, models.KindVehicleApproved, to,
		"Vehicle sticker issued for "+plate,
		fmt.Sprintf("Sticker %s for %s is valid until %s.", code, plate, expiresAt.Format("2006-01-02")),
		map[string]string{"plate": plate, "code": code})
}

func (n *Notifier) VehicleRejected(ctx context.Context, to, plate, reason string) {
	n.send(ctx, models.KindVehicleRejected, to,
		"Vehicle sticker request for "+plate+" was not approved",
		"Reason: "+reason,
		map[string]string{"plate": plate})
}

func (n *Notifier) PaymentVerified(ctx context.Context, to string, amount decimal.Decimal, year int) {
	n.send(ctx, models.KindPaymentVerified, to,
		"Payment received",
		fmt.Sprintf("We verified your payment of %s for %d.", amount.StringFixed(2), year),
		map[string]string{"amount": amount.StringFixed(2), "year": fmt.Sprint(year)})
}

func (n *Notifier) PaymentRejected(ctx context.Context, to string, amount decimal.Decimal, reason string) {
	n.send(ctx, models.KindPaymentRejected, to,
		"Payment could not be verified",
		fmt.Sprintf("Your payment of %s was rejected. Reason: %s", amount.StringFixed(2), reason),
		map[string]string{"amount": amount.StringFixed(2)})
}

func (n *Notifier) send(ctx context.Context, kind models.Kind, to, subject, body string, data map[string]string) {
	if to == "" {
		return
	}
	msg := models.Message{
		ID:        uuid.NewString(),
		Kind:      kind,
		To:        to,
		From:      n.from,
		Subject:   subject,
		Body:      body,
		Data:      data,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := n.queue.Enqueue(ctx, msg); err != nil {
		n.logger.WarnContext(ctx, "notification not queued", "kind", kind, "to", to, "error", err)
	}
}
