package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"gatehouse/internal/dues/models"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/validation"
)

// SubmitPaymentRequest is a resident reporting a payment. Year defaults to
// the current one.
type SubmitPaymentRequest struct {
	FeeType   string          `json:"fee_type" validate:"omitempty,oneof=annual_dues car_sticker"`
	Year      int             `json:"year"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" validate:"max=32"`
	Reference string          `json:"reference_number" validate:"max=100"`

	feeType models.FeeType
}

func (r *SubmitPaymentRequest) Normalize() {
	if r == nil {
		return
	}
	r.FeeType = strings.ToLower(strings.TrimSpace(r.FeeType))
	r.Method = strings.ToLower(strings.TrimSpace(r.Method))
	r.Reference = strings.TrimSpace(r.Reference)
}

func (r *SubmitPaymentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Struct(r); err != nil {
		return err
	}
	// empty fee type means annual dues
	feeType, err := models.ParseFeeType(r.FeeType)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid fee_type")
	}
	r.feeType = feeType
	if r.Year != 0 && !models.ValidYear(r.Year) {
		return dErrors.New(dErrors.CodeValidation, "year out of range")
	}
	if !r.Amount.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	return nil
}

// UpsertConfigRequest sets the annual dues for the year in the path. Active
// defaults to true.
type UpsertConfigRequest struct {
	AnnualAmount decimal.Decimal `json:"annual_amount"`
	Active       *bool           `json:"is_active"`
}

func (r *UpsertConfigRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.AnnualAmount.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "annual_amount cannot be negative")
	}
	return nil
}

func (r *UpsertConfigRequest) active() bool {
	return r.Active == nil || *r.Active
}

type ReasonRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

func (r *ReasonRequest) Normalize() {
	if r == nil {
		return
	}
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *ReasonRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Struct(r)
}
