package models

import (
	"strings"
	"time"

	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// Role is the portal role of an identity-provider account.
type Role string

const (
	RoleUser     Role = "USER"
	RoleResident Role = "RESIDENT"
	RoleStaff    Role = "STAFF"
	RoleAdmin    Role = "ADMIN"
)

// rank orders roles for the monotonic promotion rule.
var rank = map[Role]int{
	RoleUser:     0,
	RoleResident: 1,
	RoleStaff:    2,
	RoleAdmin:    3,
}

func (r Role) IsValid() bool {
	_, ok := rank[r]
	return ok
}

// IsStaff reports whether r may review registrations and payments.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// ParseRole accepts any casing; unknown values are an invalid-input error.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role")
	}
	return r, nil
}

// Account mirrors the identity provider's account locally. Only Role is
// mutated by this service.
type Account struct {
	ID        id.AccountID `json:"id"`
	Email     string       `json:"email"`
	Role      Role         `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func NewAccount(accountID id.AccountID, email string, role Role, now time.Time) (*Account, error) {
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account id required")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account email required")
	}
	if role == "" {
		role = RoleUser
	}
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid account role")
	}
	return &Account{ID: accountID, Email: email, Role: role, CreatedAt: now, UpdatedAt: now}, nil
}

// PromoteToResident raises USER to RESIDENT. Higher roles are kept, so the
// operation never demotes STAFF or ADMIN. It reports whether the role changed.
func (a *Account) PromoteToResident(now time.Time) bool {
	if rank[a.Role] >= rank[RoleResident] {
		return false
	}
	a.Role = RoleResident
	a.UpdatedAt = now
	return true
}
