package handler

import (
	"strings"

	"gatehouse/internal/registration/models"
	residentmodels "gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	strutil "gatehouse/pkg/platform/strings"
	"gatehouse/pkg/platform/validation"
)

// SubmitRegistrationRequest is the self-service signup claim.
type SubmitRegistrationRequest struct {
	Email        string   `json:"email" validate:"required,email,max=255"`
	FirstName    string   `json:"first_name" validate:"required,max=100"`
	LastName     string   `json:"last_name" validate:"required,max=100"`
	Phone        string   `json:"phone" validate:"max=32"`
	Phase        string   `json:"phase" validate:"max=20"`
	Block        string   `json:"block" validate:"max=20"`
	Lot          string   `json:"lot" validate:"max=20"`
	Street       string   `json:"street" validate:"max=200"`
	DocumentURLs []string `json:"document_urls" validate:"max=10,dive,max=2048"`
}

func (r *SubmitRegistrationRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Phase = strings.TrimSpace(r.Phase)
	r.Block = strings.TrimSpace(r.Block)
	r.Lot = strings.TrimSpace(r.Lot)
	r.Street = strings.TrimSpace(r.Street)
	r.DocumentURLs = strutil.DedupeURLs(r.DocumentURLs)
}

func (r *SubmitRegistrationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Struct(r)
}

func (r *SubmitRegistrationRequest) claim() models.Claim {
	return models.Claim{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Address: residentmodels.Address{
			Phase:  r.Phase,
			Block:  r.Block,
			Lot:    r.Lot,
			Street: r.Street,
		},
		DocumentURLs: r.DocumentURLs,
	}
}

// ApproveRegistrationRequest optionally selects an existing resident to link.
type ApproveRegistrationRequest struct {
	ResidentID string `json:"resident_id"`

	residentID *id.ResidentID
}

func (r *ApproveRegistrationRequest) Normalize() {
	if r == nil {
		return
	}
	r.ResidentID = strings.TrimSpace(r.ResidentID)
}

func (r *ApproveRegistrationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.ResidentID == "" {
		return nil
	}
	parsed, err := id.ParseResidentID(r.ResidentID)
	if err != nil {
		return err
	}
	r.residentID = &parsed
	return nil
}

// RejectRegistrationRequest carries the optional rejection reason.
type RejectRegistrationRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

func (r *RejectRegistrationRequest) Normalize() {
	if r == nil {
		return
	}
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *RejectRegistrationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Struct(r)
}
