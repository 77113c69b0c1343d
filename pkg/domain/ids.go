// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "gatehouse/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a ResidentID where an AccountID is expected.
type (
	AccountID        uuid.UUID
	ResidentID       uuid.UUID
	RegistrationID   uuid.UUID
	VehicleID        uuid.UUID
	VehicleRequestID uuid.UUID
	StickerID        uuid.UUID
	PaymentID        uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseAccountID(s string) (AccountID, error) {
	id, err := parseUUID(s, "account ID")
	return AccountID(id), err
}

func ParseResidentID(s string) (ResidentID, error) {
	id, err := parseUUID(s, "resident ID")
	return ResidentID(id), err
}

func ParseRegistrationID(s string) (RegistrationID, error) {
	id, err := parseUUID(s, "registration ID")
	return RegistrationID(id), err
}

func ParseVehicleID(s string) (VehicleID, error) {
	id, err := parseUUID(s, "vehicle ID")
	return VehicleID(id), err
}

func ParseVehicleRequestID(s string) (VehicleRequestID, error) {
	id, err := parseUUID(s, "vehicle request ID")
	return VehicleRequestID(id), err
}

func ParseStickerID(s string) (StickerID, error) {
	id, err := parseUUID(s, "sticker ID")
	return StickerID(id), err
}

func ParsePaymentID(s string) (PaymentID, error) {
	id, err := parseUUID(s, "payment ID")
	return PaymentID(id), err
}

// String methods - for logging and debugging.

func (id AccountID) String() string        { return uuid.UUID(id).String() }
func (id ResidentID) String() string       { return uuid.UUID(id).String() }
func (id RegistrationID) String() string   { return uuid.UUID(id).String() }
func (id VehicleID) String() string        { return uuid.UUID(id).String() }
func (id VehicleRequestID) String() string { return uuid.UUID(id).String() }
func (id StickerID) String() string        { return uuid.UUID(id).String() }
func (id PaymentID) String() string        { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id AccountID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ResidentID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id RegistrationID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id VehicleID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id VehicleRequestID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id StickerID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id PaymentID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic.
// Nil UUIDs are accepted here; services reject them with IsNil so that store
// lookups for unknown IDs surface as not found.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
