package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// StickerStatus is the lifecycle state of a gate sticker.
type StickerStatus string

const (
	StickerActive  StickerStatus = "ACTIVE"
	StickerExpired StickerStatus = "EXPIRED"
	StickerRevoked StickerStatus = "REVOKED"
)

// Sticker is an issued gate pass. Code is globally unique.
type Sticker struct {
	ID           id.StickerID    `json:"id"`
	Code         string          `json:"code"`
	ResidentID   id.ResidentID   `json:"resident_id"`
	VehicleID    *id.VehicleID   `json:"vehicle_id,omitempty"`
	Status       StickerStatus   `json:"status"`
	IssuedAt     time.Time       `json:"issued_at"`
	ExpiresAt    time.Time       `json:"expires_at"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	RevokedAt    *time.Time      `json:"revoked_at,omitempty"`
	RevokeReason string          `json:"revoke_reason,omitempty"`
}

func NewSticker(stickerID id.StickerID, code string, residentID id.ResidentID, vehicleID *id.VehicleID, amount decimal.Decimal, issuedAt, expiresAt time.Time) (*Sticker, error) {
	if stickerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "sticker id required")
	}
	if code == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "sticker code required")
	}
	if residentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resident id required")
	}
	if !expiresAt.After(issuedAt) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "sticker must expire after issuance")
	}
	return &Sticker{
		ID:         stickerID,
		Code:       code,
		ResidentID: residentID,
		VehicleID:  vehicleID,
		Status:     StickerActive,
		IssuedAt:   issuedAt,
		ExpiresAt:  expiresAt,
		AmountPaid: amount,
	}, nil
}

func (s *Sticker) IsActive() bool {
	return s.Status == StickerActive
}

// Revoke moves an active sticker to REVOKED.
func (s *Sticker) Revoke(reason string, now time.Time) error {
	if !s.IsActive() {
		return dErrors.New(dErrors.CodeInvariantViolation, "only active stickers can be revoked")
	}
	s.Status = StickerRevoked
	s.RevokedAt = &now
	s.RevokeReason = reason
	return nil
}

// ExpiredAt reports whether an active sticker is past its expiry at now.
func (s *Sticker) ExpiredAt(now time.Time) bool {
	return s.IsActive() && !now.Before(s.ExpiresAt)
}
