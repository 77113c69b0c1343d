package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gatehouse/internal/dues/models"
	"gatehouse/internal/platform/tracer"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/audit"
	"gatehouse/pkg/requestcontext"
)

// SubmitPaymentCommand is a linked resident reporting a payment.
type SubmitPaymentCommand struct {
	AccountID id.AccountID
	FeeType   models.FeeType
	Year      int
	Amount    decimal.Decimal
	Method    string
	Reference string
}

type VerifyPaymentCommand struct {
	PaymentID  id.PaymentID
	VerifierID id.AccountID
}

type RejectPaymentCommand struct {
	PaymentID  id.PaymentID
	VerifierID id.AccountID
	Reason     string
}

// SubmitPayment records a pending payment for the caller's resident. A zero
// year means the current one.
func (s *Service) SubmitPayment(ctx context.Context, cmd SubmitPaymentCommand) (*models.Payment, error) {
	resident, err := s.residentForAccount(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	year := cmd.Year
	if year == 0 {
		year = now.Year()
	}
	p, err := models.NewPayment(id.PaymentID(uuid.New()), resident.ID, cmd.FeeType, year, cmd.Amount, cmd.Method, cmd.Reference, now)
	if err != nil {
		return nil, err
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, wrapPaymentErr(err, "failed to create payment")
	}

	s.auditor.Log(ctx, audit.ActionPaymentSubmitted, p.ID.String(),
		"actor_id", cmd.AccountID.String(),
		"fee_type", string(p.FeeType),
		"amount", p.Amount.String(),
	)
	if s.metrics != nil {
		s.metrics.IncrementSubmitted(string(p.FeeType))
	}
	return p, nil
}

// VerifyPayment marks a pending payment verified and, for annual dues, applies
// it to the ledger in the same transaction.
func (s *Service) VerifyPayment(ctx context.Context, cmd VerifyPaymentCommand) (result *models.Verification, err error) {
	if cmd.PaymentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "payment ID required")
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanPaymentVerify,
		tracer.String(tracer.AttrPaymentID, cmd.PaymentID.String()),
		tracer.String(tracer.AttrAccountID, cmd.VerifierID.String()),
	)
	defer func() { span.End(err) }()

	now := requestcontext.Now(ctx)
	result = &models.Verification{}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := s.payments.FindByID(txCtx, cmd.PaymentID)
		if err != nil {
			return wrapPaymentErr(err, "failed to load payment")
		}
		if !p.IsPending() {
			return alreadyProcessed()
		}
		if err := p.Verify(cmd.VerifierID, now); err != nil {
			return err
		}
		if err := s.payments.SaveDecision(txCtx, p); err != nil {
			return wrapPaymentErr(err, "failed to save payment decision")
		}
		result.Payment = p
		if !p.AffectsLedger() {
			return nil
		}
		row, applied, err := s.applyToLedger(txCtx, p, now)
		if err != nil {
			return err
		}
		result.Ledger, result.Applied = row, applied
		return nil
	})
	if err != nil {
		return nil, err
	}

	p := result.Payment
	attrs := []any{
		"actor_id", cmd.VerifierID.String(),
		"fee_type", string(p.FeeType),
		"amount", p.Amount.String(),
	}
	if result.Ledger != nil {
		span.SetAttributes(tracer.String(tracer.AttrLedgerStatus, string(result.Ledger.Status)))
		attrs = append(attrs, "ledger_status", string(result.Ledger.Status), "amount_paid", result.Ledger.AmountPaid.String())
	}
	s.auditor.Log(ctx, audit.ActionPaymentVerified, p.ID.String(), attrs...)
	if s.metrics != nil {
		s.metrics.IncrementDecision(string(models.PaymentVerified))
		s.metrics.AddVerified(string(p.FeeType), p.Amount)
		if result.Ledger != nil {
			s.metrics.ObserveLedger(string(result.Ledger.Status), result.Applied)
		}
	}
	if s.notifier != nil {
		if to := s.residentEmail(ctx, p.ResidentID); to != "" {
			s.notifier.PaymentVerified(ctx, to, p.Amount, p.Year)
		}
	}
	return result, nil
}

func (s *Service) applyToLedger(ctx context.Context, p *models.Payment, now time.Time) (row *models.LedgerRow, applied bool, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanLedgerApply,
		tracer.String(tracer.AttrPaymentID, p.ID.String()),
		tracer.String(tracer.AttrResidentID, p.ResidentID.String()),
	)
	defer func() { span.End(err) }()

	row, applied, err = s.updater.Apply(ctx, p, now)
	if err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update dues ledger")
	}
	if !applied {
		s.logger.WarnContext(ctx, "payment already applied to ledger",
			"payment_id", p.ID.String(), "resident_id", p.ResidentID.String(), "year", p.Year)
	}
	return row, applied, nil
}

// RejectPayment closes a pending payment without touching the ledger.
func (s *Service) RejectPayment(ctx context.Context, cmd RejectPaymentCommand) (*models.Payment, error) {
	if cmd.PaymentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "payment ID required")
	}
	p, err := s.payments.FindByID(ctx, cmd.PaymentID)
	if err != nil {
		return nil, wrapPaymentErr(err, "failed to load payment")
	}
	if !p.IsPending() {
		return nil, alreadyProcessed()
	}
	if err := p.Reject(cmd.VerifierID, cmd.Reason, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.payments.SaveDecision(ctx, p); err != nil {
		return nil, wrapPaymentErr(err, "failed to save payment decision")
	}

	s.auditor.Log(ctx, audit.ActionPaymentRejected, p.ID.String(),
		"actor_id", cmd.VerifierID.String(),
		"reason", cmd.Reason,
	)
	if s.metrics != nil {
		s.metrics.IncrementDecision(string(models.PaymentRejected))
	}
	if s.notifier != nil {
		if to := s.residentEmail(ctx, p.ResidentID); to != "" {
			s.notifier.PaymentRejected(ctx, to, p.Amount, cmd.Reason)
		}
	}
	return p, nil
}

// ListPayments returns payments in the given status, oldest first.
func (s *Service) ListPayments(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error) {
	payments, err := s.payments.ListByStatus(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payments")
	}
	return payments, nil
}

// CountPending feeds the staff dashboard.
func (s *Service) CountPending(ctx context.Context) (int, error) {
	n, err := s.payments.CountByStatus(ctx, models.PaymentPending)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count pending payments")
	}
	return n, nil
}
