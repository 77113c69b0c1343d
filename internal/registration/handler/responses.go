package handler

import (
	"time"

	"gatehouse/internal/registration/models"
	residentmodels "gatehouse/internal/resident/models"
)

// SubmitResponse reports what happened to a signup claim.
type SubmitResponse struct {
	Status     string `json:"status"`
	Action     string `json:"action"`
	Confidence string `json:"confidence"`
	RequestID  string `json:"request_id,omitempty"`
	ResidentID string `json:"resident_id,omitempty"`
}

// RegistrationResponse is the review-queue view of a request.
type RegistrationResponse struct {
	ID                string                 `json:"id"`
	AccountID         string                 `json:"account_id"`
	Email             string                 `json:"email"`
	FirstName         string                 `json:"first_name"`
	LastName          string                 `json:"last_name"`
	Phone             string                 `json:"phone,omitempty"`
	Address           residentmodels.Address `json:"address"`
	DocumentURLs      []string               `json:"document_urls,omitempty"`
	MatchConfidence   string                 `json:"match_confidence"`
	MatchedResidentID string                 `json:"matched_resident_id,omitempty"`
	Status            string                 `json:"status"`
	ReviewedBy        string                 `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time             `json:"reviewed_at,omitempty"`
	RejectionReason   string                 `json:"rejection_reason,omitempty"`
	ResidentID        string                 `json:"resident_id,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
}

// RegistrationListResponse wraps a filtered list.
type RegistrationListResponse struct {
	Registrations []*RegistrationResponse `json:"registrations"`
	Total         int                     `json:"total"`
}

// DecisionResponse is returned after approve or reject.
type DecisionResponse struct {
	Registration    *RegistrationResponse `json:"registration"`
	ResidentID      string                `json:"resident_id,omitempty"`
	ResidentCreated bool                  `json:"resident_created"`
}

func toSubmitResponse(res *models.SubmitResult) *SubmitResponse {
	out := &SubmitResponse{
		Status:     string(res.Status),
		Action:     string(res.Action),
		Confidence: string(res.Confidence),
		ResidentID: res.ResidentID,
	}
	if res.Request != nil {
		out.RequestID = res.Request.ID.String()
	}
	return out
}

func toRegistrationResponse(req *models.Request) *RegistrationResponse {
	out := &RegistrationResponse{
		ID:              req.ID.String(),
		AccountID:       req.AccountID.String(),
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Address:         req.Address,
		DocumentURLs:    req.DocumentURLs,
		MatchConfidence: string(req.MatchConfidence),
		Status:          string(req.Status),
		ReviewedAt:      req.ReviewedAt,
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt,
	}
	if req.MatchedResidentID != nil {
		out.MatchedResidentID = req.MatchedResidentID.String()
	}
	if req.ReviewedBy != nil {
		out.ReviewedBy = req.ReviewedBy.String()
	}
	if req.ResidentID != nil {
		out.ResidentID = req.ResidentID.String()
	}
	return out
}

func toRegistrationListResponse(reqs []*models.Request) *RegistrationListResponse {
	out := &RegistrationListResponse{
		Registrations: make([]*RegistrationResponse, 0, len(reqs)),
		Total:         len(reqs),
	}
	for _, req := range reqs {
		out.Registrations = append(out.Registrations, toRegistrationResponse(req))
	}
	return out
}

func toDecisionResponse(d *models.Decision) *DecisionResponse {
	return &DecisionResponse{
		Registration:    toRegistrationResponse(d.Request),
		ResidentID:      d.ResidentID,
		ResidentCreated: d.Created,
	}
}
