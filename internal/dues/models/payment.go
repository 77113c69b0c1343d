package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// FeeType classifies what a payment is for.
type FeeType string

const (
	FeeAnnualDues FeeType = "annual_dues"
	FeeCarSticker FeeType = "car_sticker"
)

func ParseFeeType(s string) (FeeType, error) {
	switch FeeType(s) {
	case FeeAnnualDues, FeeCarSticker:
		return FeeType(s), nil
	case "":
		return FeeAnnualDues, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unknown fee type %q", s))
	}
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

// ParsePaymentStatus treats an empty filter as pending.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case "":
		return PaymentPending, nil
	case PaymentPending, PaymentVerified, PaymentRejected:
		return PaymentStatus(s), nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unknown payment status %q", s))
	}
}

// Year bounds accepted for dues years.
const (
	MinYear = 2000
	MaxYear = 2100
)

func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// Payment is a resident-submitted payment awaiting staff verification. It is
// immutable once verified or rejected.
type Payment struct {
	ID              id.PaymentID    `json:"id"`
	ResidentID      id.ResidentID   `json:"resident_id"`
	FeeType         FeeType         `json:"fee_type"`
	Year            int             `json:"year"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	Reference       string          `json:"reference_number"`
	Status          PaymentStatus   `json:"status"`
	VerifiedBy      *id.AccountID   `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time      `json:"verified_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewPayment(paymentID id.PaymentID, residentID id.ResidentID, feeType FeeType, year int, amount decimal.Decimal, method, reference string, now time.Time) (*Payment, error) {
	if paymentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "payment id required")
	}
	if residentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resident id required")
	}
	if feeType != FeeAnnualDues && feeType != FeeCarSticker {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid fee type")
	}
	if !ValidYear(year) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "year out of range")
	}
	if !amount.IsPositive() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "amount must be positive")
	}
	return &Payment{
		ID:         paymentID,
		ResidentID: residentID,
		FeeType:    feeType,
		Year:       year,
		Amount:     amount,
		Method:     method,
		Reference:  reference,
		Status:     PaymentPending,
		CreatedAt:  now,
	}, nil
}

func (p *Payment) IsPending() bool {
	return p.Status == PaymentPending
}

// AffectsLedger reports whether verifying this payment feeds the dues ledger.
func (p *Payment) AffectsLedger() bool {
	return p.FeeType == FeeAnnualDues
}

func (p *Payment) Verify(verifier id.AccountID, now time.Time) error {
	if !p.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "payment is not pending")
	}
	p.Status = PaymentVerified
	p.VerifiedBy = &verifier
	p.VerifiedAt = &now
	return nil
}

// Reject records the reviewer in VerifiedBy as well; the column holds whoever
// closed the payment.
func (p *Payment) Reject(verifier id.AccountID, reason string, now time.Time) error {
	if !p.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "payment is not pending")
	}
	p.Status = PaymentRejected
	p.VerifiedBy = &verifier
	p.VerifiedAt = &now
	p.RejectionReason = reason
	return nil
}
