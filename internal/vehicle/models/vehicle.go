package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// NormalizePlate upper-cases a plate number and strips all whitespace.
func NormalizePlate(plate string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, plate)
}

// Details are the descriptive attributes shared by a vehicle and its request.
type Details struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

// Vehicle is a registered resident vehicle. PlateNumber is unique.
type Vehicle struct {
	ID          id.VehicleID  `json:"id"`
	ResidentID  id.ResidentID `json:"resident_id"`
	PlateNumber string        `json:"plate_number"`
	Details
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewVehicle(vehicleID id.VehicleID, residentID id.ResidentID, plate string, details Details, now time.Time) (*Vehicle, error) {
	if vehicleID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "vehicle id required")
	}
	if residentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resident id required")
	}
	plate = NormalizePlate(plate)
	if plate == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "plate number required")
	}
	return &Vehicle{
		ID:          vehicleID,
		ResidentID:  residentID,
		PlateNumber: plate,
		Details:     details,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Refresh applies the latest request details to an existing vehicle. The
// plate stays with whichever resident last had a request approved for it.
func (v *Vehicle) Refresh(residentID id.ResidentID, details Details, now time.Time) {
	v.ResidentID = residentID
	v.Details = details
	v.UpdatedAt = now
}

// RequestStatus is the review state of a vehicle request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ParseRequestStatus maps a query value to a status; empty means pending.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch st := RequestStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return RequestPending, nil
	case RequestPending, RequestApproved, RequestRejected:
		return st, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "status must be one of pending, approved, rejected")
	}
}

// Request is a resident's application for a vehicle sticker.
type Request struct {
	ID          id.VehicleRequestID `json:"id"`
	ResidentID  id.ResidentID       `json:"resident_id"`
	PlateNumber string              `json:"plate_number"`
	Details
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	Status          RequestStatus   `json:"status"`
	ReviewedBy      *id.AccountID   `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	StickerID       *id.StickerID   `json:"sticker_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewRequest(requestID id.VehicleRequestID, residentID id.ResidentID, plate string, details Details, amount decimal.Decimal, now time.Time) (*Request, error) {
	if requestID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "vehicle request id required")
	}
	if residentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resident id required")
	}
	plate = NormalizePlate(plate)
	if plate == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "plate number required")
	}
	if amount.IsNegative() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "amount paid cannot be negative")
	}
	return &Request{
		ID:          requestID,
		ResidentID:  residentID,
		PlateNumber: plate,
		Details:     details,
		AmountPaid:  amount,
		Status:      RequestPending,
		CreatedAt:   now,
	}, nil
}

func (r *Request) IsPending() bool {
	return r.Status == RequestPending
}

// Approve marks the request approved and records the issued sticker.
func (r *Request) Approve(reviewer id.AccountID, stickerID id.StickerID, now time.Time) error {
	if !r.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "vehicle request is not pending")
	}
	r.Status = RequestApproved
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &now
	r.StickerID = &stickerID
	return nil
}

func (r *Request) Reject(reviewer id.AccountID, reason string, now time.Time) error {
	if !r.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "vehicle request is not pending")
	}
	r.Status = RequestRejected
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &now
	r.RejectionReason = reason
	return nil
}
