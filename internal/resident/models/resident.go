package models

import (
	"fmt"
	"strings"
	"time"

	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// Address identifies a unit in the community. Phase, block and lot compare
// case-insensitively; street is informational.
type Address struct {
	Phase  string `json:"phase"`
	Block  string `json:"block"`
	Lot    string `json:"lot"`
	Street string `json:"street,omitempty"`
}

// IsEmpty reports whether phase, block and lot are all blank.
func (a Address) IsEmpty() bool {
	return strings.TrimSpace(a.Phase) == "" &&
		strings.TrimSpace(a.Block) == "" &&
		strings.TrimSpace(a.Lot) == ""
}

// SameUnit compares the (phase, block, lot) tuple case-insensitively.
func (a Address) SameUnit(other Address) bool {
	return strings.EqualFold(strings.TrimSpace(a.Phase), strings.TrimSpace(other.Phase)) &&
		strings.EqualFold(strings.TrimSpace(a.Block), strings.TrimSpace(other.Block)) &&
		strings.EqualFold(strings.TrimSpace(a.Lot), strings.TrimSpace(other.Lot))
}

// PropertyAddress renders the free-text address used when none was supplied,
// e.g. "Phase 1, Block 3, Lot 12, Acacia St".
func (a Address) PropertyAddress() string {
	var parts []string
	if p := strings.TrimSpace(a.Phase); p != "" {
		parts = append(parts, "Phase "+p)
	}
	if b := strings.TrimSpace(a.Block); b != "" {
		parts = append(parts, "Block "+b)
	}
	if l := strings.TrimSpace(a.Lot); l != "" {
		parts = append(parts, "Lot "+l)
	}
	if s := strings.TrimSpace(a.Street); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func (a Address) String() string {
	return fmt.Sprintf("phase=%s block=%s lot=%s", a.Phase, a.Block, a.Lot)
}

// Resident is a homeowner or tenant record, optionally linked to a portal account.
type Resident struct {
	ID              id.ResidentID `json:"id"`
	FirstName       string        `json:"first_name"`
	MiddleName      string        `json:"middle_name,omitempty"`
	LastName        string        `json:"last_name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone,omitempty"`
	Address         Address       `json:"address"`
	PropertyAddress string        `json:"property_address"`
	IsOwner         bool          `json:"is_owner"`
	LinkedAccountID *id.AccountID `json:"linked_account_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// IsLinked reports whether a portal account is attached.
func (r *Resident) IsLinked() bool {
	return r.LinkedAccountID != nil && !r.LinkedAccountID.IsNil()
}

// FullName joins first and last name.
func (r *Resident) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// NewResident builds an unlinked resident. An empty property address is
// synthesized from the unit.
func NewResident(residentID id.ResidentID, firstName, lastName, email, phone string, addr Address, propertyAddress string, now time.Time) (*Resident, error) {
	if residentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resident id required")
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resident first and last name required")
	}
	if strings.TrimSpace(propertyAddress) == "" {
		propertyAddress = addr.PropertyAddress()
	}
	return &Resident{
		ID:              residentID,
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		Phone:           phone,
		Address:         addr,
		PropertyAddress: propertyAddress,
		IsOwner:         true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Occupant is the payload returned when a unit is already claimed.
type Occupant struct {
	ResidentID      string `json:"resident_id"`
	Name            string `json:"name"`
	LinkedAccountID string `json:"linked_account_id"`
}

// AsOccupant renders the resident for a duplicate-address conflict.
func (r *Resident) AsOccupant() Occupant {
	o := Occupant{ResidentID: r.ID.String(), Name: r.FullName()}
	if r.LinkedAccountID != nil {
		o.LinkedAccountID = r.LinkedAccountID.String()
	}
	return o
}
