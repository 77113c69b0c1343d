package handler

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gatehouse/internal/vehicle/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/validation"
)

// SubmitVehicleRequest is a resident's sticker application.
type SubmitVehicleRequest struct {
	PlateNumber string          `json:"plate_number" validate:"required,max=16"`
	Make        string          `json:"make" validate:"max=64"`
	Model       string          `json:"model" validate:"max=64"`
	Color       string          `json:"color" validate:"max=64"`
	Type        string          `json:"type" validate:"max=64"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
}

func (r *SubmitVehicleRequest) Normalize() {
	if r == nil {
		return
	}
	r.PlateNumber = models.NormalizePlate(r.PlateNumber)
	r.Make = strings.TrimSpace(r.Make)
	r.Model = strings.TrimSpace(r.Model)
	r.Color = strings.TrimSpace(r.Color)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
}

func (r *SubmitVehicleRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.AmountPaid.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "amount_paid cannot be negative")
	}
	return nil
}

func (r *SubmitVehicleRequest) details() models.Details {
	return models.Details{Make: r.Make, Model: r.Model, Color: r.Color, Type: r.Type}
}

// ApproveVehicleRequest optionally overrides the sticker expiry.
type ApproveVehicleRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}

// ReasonRequest carries an optional reason for reject and revoke.
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

// IssueStickerRequest is direct staff issuance.
type IssueStickerRequest struct {
	ResidentID string          `json:"resident_id"`
	VehicleID  string          `json:"vehicle_id"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	ExpiresAt  *time.Time      `json:"expires_at"`

	residentID id.ResidentID
	vehicleID  *id.VehicleID
}

func (r *IssueStickerRequest) Normalize() {
	if r == nil {
		return
	}
	r.ResidentID = strings.TrimSpace(r.ResidentID)
	r.VehicleID = strings.TrimSpace(r.VehicleID)
}

func (r *IssueStickerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	residentID, err := id.ParseResidentID(r.ResidentID)
	if err != nil {
		return err
	}
	r.residentID = residentID
	if r.VehicleID != "" {
		vehicleID, err := id.ParseVehicleID(r.VehicleID)
		if err != nil {
			return err
		}
		r.vehicleID = &vehicleID
	}
	if r.AmountPaid.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "amount_paid cannot be negative")
	}
	return nil
}
