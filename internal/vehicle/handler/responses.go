package handler

import (
	"time"

	"gatehouse/internal/vehicle/models"
	"gatehouse/internal/vehicle/service"
)

type VehicleResponse struct {
	ID          string `json:"id"`
	ResidentID  string `json:"resident_id"`
	PlateNumber string `json:"plate_number"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Color       string `json:"color"`
	Type        string `json:"type"`
}

type StickerResponse struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	ResidentID   string     `json:"resident_id"`
	VehicleID    string     `json:"vehicle_id,omitempty"`
	Status       string     `json:"status"`
	IssuedAt     time.Time  `json:"issued_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	AmountPaid   string     `json:"amount_paid"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
	RevokeReason string     `json:"revoke_reason,omitempty"`
}

type VehicleRequestResponse struct {
	ID              string     `json:"id"`
	ResidentID      string     `json:"resident_id"`
	PlateNumber     string     `json:"plate_number"`
	Make            string     `json:"make"`
	Model           string     `json:"model"`
	Color           string     `json:"color"`
	Type            string     `json:"type"`
	AmountPaid      string     `json:"amount_paid"`
	Status          string     `json:"status"`
	ReviewedBy      string     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	StickerID       string     `json:"sticker_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type VehicleRequestListResponse struct {
	Requests []*VehicleRequestResponse `json:"requests"`
	Total    int                       `json:"total"`
}

type ApprovalResponse struct {
	Request        *VehicleRequestResponse `json:"request"`
	Vehicle        *VehicleResponse        `json:"vehicle"`
	Sticker        *StickerResponse        `json:"sticker"`
	VehicleCreated bool                    `json:"vehicle_created"`
}

type GarageResponse struct {
	Vehicles []*VehicleResponse `json:"vehicles"`
	Stickers []*StickerResponse `json:"stickers"`
}

type ExpireResponse struct {
	Expired int `json:"expired"`
}

func toVehicleResponse(v *models.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:          v.ID.String(),
		ResidentID:  v.ResidentID.String(),
		PlateNumber: v.PlateNumber,
		Make:        v.Make,
		Model:       v.Model,
		Color:       v.Color,
		Type:        v.Type,
	}
}

func toStickerResponse(st *models.Sticker) *StickerResponse {
	out := &StickerResponse{
		ID:           st.ID.String(),
		Code:         st.Code,
		ResidentID:   st.ResidentID.String(),
		Status:       string(st.Status),
		IssuedAt:     st.IssuedAt,
		ExpiresAt:    st.ExpiresAt,
		AmountPaid:   st.AmountPaid.StringFixed(2),
		RevokedAt:    st.RevokedAt,
		RevokeReason: st.RevokeReason,
	}
	if st.VehicleID != nil {
		out.VehicleID = st.VehicleID.String()
	}
	return out
}

func toRequestResponse(r *models.Request) *VehicleRequestResponse {
	out := &VehicleRequestResponse{
		ID:              r.ID.String(),
		ResidentID:      r.ResidentID.String(),
		PlateNumber:     r.PlateNumber,
		Make:            r.Make,
		Model:           r.Model,
		Color:           r.Color,
		Type:            r.Type,
		AmountPaid:      r.AmountPaid.StringFixed(2),
		Status:          string(r.Status),
		ReviewedAt:      r.ReviewedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
	if r.ReviewedBy != nil {
		out.ReviewedBy = r.ReviewedBy.String()
	}
	if r.StickerID != nil {
		out.StickerID = r.StickerID.String()
	}
	return out
}

func toRequestListResponse(reqs []*models.Request) *VehicleRequestListResponse {
	out := &VehicleRequestListResponse{Requests: make([]*VehicleRequestResponse, 0, len(reqs)), Total: len(reqs)}
	for _, r := range reqs {
		out.Requests = append(out.Requests, toRequestResponse(r))
	}
	return out
}

func toApprovalResponse(a *models.Approval) *ApprovalResponse {
	return &ApprovalResponse{
		Request:        toRequestResponse(a.Request),
		Vehicle:        toVehicleResponse(a.Vehicle),
		Sticker:        toStickerResponse(a.Sticker),
		VehicleCreated: a.VehicleCreated,
	}
}

func toGarageResponse(g *service.Garage) *GarageResponse {
	out := &GarageResponse{
		Vehicles: make([]*VehicleResponse, 0, len(g.Vehicles)),
		Stickers: make([]*StickerResponse, 0, len(g.Stickers)),
	}
	for _, v := range g.Vehicles {
		out.Vehicles = append(out.Vehicles, toVehicleResponse(v))
	}
	for _, st := range g.Stickers {
		out.Stickers = append(out.Stickers, toStickerResponse(st))
	}
	return out
}
