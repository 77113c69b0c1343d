package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatehouse/internal/vehicle/models"
	"gatehouse/internal/vehicle/service"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

// Service defines the vehicle and sticker operations exposed over HTTP.
type Service interface {
	SubmitRequest(ctx context.Context, cmd service.SubmitRequestCommand) (*models.Request, error)
	ApproveRequest(ctx context.Context, cmd service.ApproveRequestCommand) (*models.Approval, error)
	RejectRequest(ctx context.Context, cmd service.RejectRequestCommand) (*models.Request, error)
	IssueSticker(ctx context.Context, cmd service.IssueStickerCommand) (*models.Sticker, error)
	RevokeSticker(ctx context.Context, cmd service.RevokeStickerCommand) (*models.Sticker, error)
	ExpireStickers(ctx context.Context) (int, error)
	ListRequests(ctx context.Context, status models.RequestStatus) ([]*models.Request, error)
	GarageForAccount(ctx context.Context, accountID id.AccountID) (*service.Garage, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAccount mounts routes for residents.
func (h *Handler) RegisterAccount(r chi.Router) {
	r.Post("/vehicles/requests", h.HandleSubmitRequest)
	r.Get("/vehicles/me", h.HandleGarage)
}

// RegisterAdmin mounts staff routes. The caller applies role checks.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/vehicles/requests", h.HandleListRequests)
	r.Post("/admin/vehicles/requests/{id}/approve", h.HandleApproveRequest)
	r.Post("/admin/vehicles/requests/{id}/reject", h.HandleRejectRequest)
	r.Post("/admin/stickers", h.HandleIssueSticker)
	r.Post("/admin/stickers/{id}/revoke", h.HandleRevokeSticker)
	r.Post("/admin/stickers/expire", h.HandleExpireStickers)
}

func (h *Handler) HandleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	accountID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitVehicleRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.SubmitRequest(ctx, service.SubmitRequestCommand{
		AccountID:   accountID,
		PlateNumber: req.PlateNumber,
		Details:     req.details(),
		AmountPaid:  req.AmountPaid,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "submit vehicle request failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toRequestResponse(created))
}

// HandleGarage lists the caller's vehicles and stickers.
func (h *Handler) HandleGarage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	accountID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	garage, err := h.service.GarageForAccount(ctx, accountID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toGarageResponse(garage))
}

func (h *Handler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	status, err := models.ParseRequestStatus(r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reqs, err := h.service.ListRequests(ctx, status)
	if err != nil {
		h.logger.ErrorContext(ctx, "list vehicle requests failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRequestListResponse(reqs))
}

func (h *Handler) HandleApproveRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	reviewerID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	vehicleRequestID, err := id.ParseVehicleRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid vehicle request id"))
		return
	}
	req := &ApproveVehicleRequest{}
	if r.ContentLength != 0 {
		var ok bool
		if req, ok = httputil.DecodeAndPrepare[ApproveVehicleRequest](w, r, h.logger, ctx, requestID); !ok {
			return
		}
	}

	approval, err := h.service.ApproveRequest(ctx, service.ApproveRequestCommand{
		RequestID:  vehicleRequestID,
		ReviewerID: reviewerID,
		ExpiresAt:  req.ExpiresAt,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "approve vehicle request failed", "error", err, "request_id", requestID, "vehicle_request_id", vehicleRequestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApprovalResponse(approval))
}

func (h *Handler) HandleRejectRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	reviewerID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	vehicleRequestID, err := id.ParseVehicleRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid vehicle request id"))
		return
	}
	req, ok := h.optionalReason(w, r, requestID)
	if !ok {
		return
	}

	rejected, err := h.service.RejectRequest(ctx, service.RejectRequestCommand{
		RequestID:  vehicleRequestID,
		ReviewerID: reviewerID,
		Reason:     req.Reason,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "reject vehicle request failed", "error", err, "request_id", requestID, "vehicle_request_id", vehicleRequestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRequestResponse(rejected))
}

func (h *Handler) HandleIssueSticker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	issuerID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[IssueStickerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	sticker, err := h.service.IssueSticker(ctx, service.IssueStickerCommand{
		ResidentID: req.residentID,
		VehicleID:  req.vehicleID,
		AmountPaid: req.AmountPaid,
		ExpiresAt:  req.ExpiresAt,
		IssuedBy:   issuerID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "issue sticker failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toStickerResponse(sticker))
}

func (h *Handler) HandleRevokeSticker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	revokerID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	stickerID, err := id.ParseStickerID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid sticker id"))
		return
	}
	req, ok := h.optionalReason(w, r, requestID)
	if !ok {
		return
	}

	sticker, err := h.service.RevokeSticker(ctx, service.RevokeStickerCommand{
		StickerID: stickerID,
		RevokedBy: revokerID,
		Reason:    req.Reason,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "revoke sticker failed", "error", err, "request_id", requestID, "sticker_id", stickerID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStickerResponse(sticker))
}

// HandleExpireStickers runs the expiry sweep on demand.
func (h *Handler) HandleExpireStickers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := h.service.ExpireStickers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "expire stickers failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &ExpireResponse{Expired: n})
}

func (h *Handler) optionalReason(w http.ResponseWriter, r *http.Request, requestID string) (*ReasonRequest, bool) {
	if r.ContentLength == 0 {
		return &ReasonRequest{}, true
	}
	return httputil.DecodeAndPrepare[ReasonRequest](w, r, h.logger, r.Context(), requestID)
}
