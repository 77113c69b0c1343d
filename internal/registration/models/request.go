package models

import (
	"strings"
	"time"

	residentmodels "gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// Status is the lifecycle state of a registration request.
// pending is the only non-terminal state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// ParseStatus parses a status query value. Empty means pending.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return StatusPending, nil
	}
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "status must be one of pending, approved, rejected")
	}
	return st, nil
}

// Confidence grades how well a signup matched an existing resident.
type Confidence string

const (
	ConfidenceNone Confidence = "none"
	ConfidenceLow  Confidence = "low"
	ConfidenceHigh Confidence = "high"
)

// Request is a homeowner's claim to a unit awaiting staff review.
type Request struct {
	ID                id.RegistrationID      `json:"id"`
	AccountID         id.AccountID           `json:"account_id"`
	Email             string                 `json:"email"`
	FirstName         string                 `json:"first_name"`
	LastName          string                 `json:"last_name"`
	Phone             string                 `json:"phone,omitempty"`
	Address           residentmodels.Address `json:"address"`
	DocumentURLs      []string               `json:"document_urls,omitempty"`
	MatchConfidence   Confidence             `json:"match_confidence"`
	MatchedResidentID *id.ResidentID         `json:"matched_resident_id,omitempty"`
	Status            Status                 `json:"status"`
	ReviewedBy        *id.AccountID          `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time             `json:"reviewed_at,omitempty"`
	RejectionReason   string                 `json:"rejection_reason,omitempty"`
	ResidentID        *id.ResidentID         `json:"resident_id,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
}

// Claim is the identity data submitted at signup.
type Claim struct {
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	Address      residentmodels.Address
	DocumentURLs []string
}

// NewPendingRequest records a claim that needs manual review.
func NewPendingRequest(requestID id.RegistrationID, accountID id.AccountID, claim Claim, match Match, now time.Time) (*Request, error) {
	if requestID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "registration id required")
	}
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account id required")
	}
	req := &Request{
		ID:              requestID,
		AccountID:       accountID,
		Email:           claim.Email,
		FirstName:       claim.FirstName,
		LastName:        claim.LastName,
		Phone:           claim.Phone,
		Address:         claim.Address,
		DocumentURLs:    append([]string(nil), claim.DocumentURLs...),
		MatchConfidence: match.Confidence,
		Status:          StatusPending,
		CreatedAt:       now,
	}
	if match.Resident != nil {
		rid := match.Resident.ID
		req.MatchedResidentID = &rid
	}
	return req, nil
}

func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}

// Approve records the reviewer and the resident the account ended up linked to.
func (r *Request) Approve(reviewer id.AccountID, residentID id.ResidentID, now time.Time) error {
	if !r.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "registration already processed")
	}
	r.Status = StatusApproved
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &now
	r.ResidentID = &residentID
	return nil
}

// Reject records the reviewer and an optional reason.
func (r *Request) Reject(reviewer id.AccountID, reason string, now time.Time) error {
	if !r.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "registration already processed")
	}
	r.Status = StatusRejected
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &now
	r.RejectionReason = strings.TrimSpace(reason)
	return nil
}

// ResidentFromClaim builds the resident created when staff approve without
// selecting an existing record.
func (r *Request) ResidentFromClaim(residentID id.ResidentID, now time.Time) (*residentmodels.Resident, error) {
	return residentmodels.NewResident(residentID, r.FirstName, r.LastName, r.Email, r.Phone, r.Address, "", now)
}

// Match is the outcome of classifying a claim against existing residents.
type Match struct {
	Confidence Confidence
	Resident   *residentmodels.Resident
}
