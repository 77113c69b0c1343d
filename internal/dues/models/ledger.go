package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// Config is the dues configuration for one year.
type Config struct {
	Year         int             `json:"year"`
	AnnualAmount decimal.Decimal `json:"annual_amount"`
	Active       bool            `json:"is_active"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func NewConfig(year int, annual decimal.Decimal, active bool, now time.Time) (*Config, error) {
	if !ValidYear(year) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "year out of range")
	}
	if annual.IsNegative() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "annual amount must not be negative")
	}
	return &Config{Year: year, AnnualAmount: annual, Active: active, UpdatedAt: now}, nil
}

type LedgerStatus string

const (
	LedgerPaid    LedgerStatus = "paid"
	LedgerPartial LedgerStatus = "partial"
)

// StatusFor is paid iff paid covers annual.
func StatusFor(paid, annual decimal.Decimal) LedgerStatus {
	if paid.GreaterThanOrEqual(annual) {
		return LedgerPaid
	}
	return LedgerPartial
}

// LedgerRow is the cumulative dues position of one resident for one year.
type LedgerRow struct {
	ResidentID    id.ResidentID   `json:"resident_id"`
	Year          int             `json:"year"`
	AnnualAmount  decimal.Decimal `json:"annual_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Status        LedgerStatus    `json:"status"`
	LastPaymentID *id.PaymentID   `json:"last_payment_id,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Balance is what remains owed, never negative.
func (r *LedgerRow) Balance() decimal.Decimal {
	owed := r.AnnualAmount.Sub(r.AmountPaid)
	if owed.IsNegative() {
		return decimal.Zero
	}
	return owed
}

// Entry records one payment applied to a ledger row. A payment is applied at
// most once.
type Entry struct {
	PaymentID  id.PaymentID
	ResidentID id.ResidentID
	Year       int
	Amount     decimal.Decimal
	AppliedAt  time.Time
}
