package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	accountmodels "gatehouse/internal/account/models"
	"gatehouse/internal/registration/models"
	"gatehouse/internal/registration/service"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

// Service defines the registration workflow operations the HTTP layer needs.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	Submit(ctx context.Context, cmd service.SubmitCommand) (*models.SubmitResult, error)
	Approve(ctx context.Context, cmd service.ApproveCommand) (*models.Decision, error)
	Reject(ctx context.Context, cmd service.RejectCommand) (*models.Decision, error)
	List(ctx context.Context, status models.Status) ([]*models.Request, error)
	Get(ctx context.Context, requestID id.RegistrationID) (*models.Request, error)
	GetForAccount(ctx context.Context, accountID id.AccountID) (*models.Request, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAccount mounts routes for any signed-in account.
func (h *Handler) RegisterAccount(r chi.Router) {
	r.Post("/registrations", h.HandleSubmit)
	r.Get("/registrations/me", h.HandleGetMine)
}

// RegisterAdmin mounts the staff review queue. The caller applies role checks.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/registrations", h.HandleList)
	r.Get("/admin/registrations/{id}", h.HandleGet)
	r.Post("/admin/registrations/{id}/approve", h.HandleApprove)
	r.Post("/admin/registrations/{id}/reject", h.HandleReject)
}

// HandleSubmit classifies a signup claim. An auto-linked claim answers 200;
// a claim queued for review answers 202.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	accountID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[SubmitRegistrationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Submit(ctx, service.SubmitCommand{
		AccountID:    accountID,
		AccountEmail: requestcontext.Email(ctx),
		AccountRole:  accountmodels.Role(requestcontext.Role(ctx)),
		Claim:        req.claim(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "submit registration failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusAccepted
	if res.Action == models.ActionLinked {
		status = http.StatusOK
	}
	httputil.WriteJSON(w, status, toSubmitResponse(res))
}

// HandleGetMine returns the caller's latest registration request.
func (h *Handler) HandleGetMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	accountID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, err := h.service.GetForAccount(ctx, accountID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "get own registration failed", "error", err, "request_id", requestID)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toRegistrationResponse(req))
}

// HandleList returns requests filtered by ?status=, pending by default.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	status, err := models.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reqs, err := h.service.List(ctx, status)
	if err != nil {
		h.logger.ErrorContext(ctx, "list registrations failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toRegistrationListResponse(reqs))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	registrationID, ok := h.registrationIDParam(w, r)
	if !ok {
		return
	}

	req, err := h.service.Get(ctx, registrationID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get registration failed", "error", err, "request_id", requestID, "registration_id", registrationID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toRegistrationResponse(req))
}

// HandleApprove approves a pending request. The body is optional; without a
// resident_id a new resident is created from the claim.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	reviewerID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	registrationID, ok := h.registrationIDParam(w, r)
	if !ok {
		return
	}

	req := &ApproveRegistrationRequest{}
	if r.ContentLength != 0 {
		req, ok = httputil.DecodeAndPrepare[ApproveRegistrationRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
	}

	decision, err := h.service.Approve(ctx, service.ApproveCommand{
		RequestID:  registrationID,
		ResidentID: req.residentID,
		ReviewerID: reviewerID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "approve registration failed", "error", err, "request_id", requestID, "registration_id", registrationID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toDecisionResponse(decision))
}

func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	reviewerID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	registrationID, ok := h.registrationIDParam(w, r)
	if !ok {
		return
	}

	req := &RejectRegistrationRequest{}
	if r.ContentLength != 0 {
		req, ok = httputil.DecodeAndPrepare[RejectRegistrationRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
	}

	decision, err := h.service.Reject(ctx, service.RejectCommand{
		RequestID:  registrationID,
		ReviewerID: reviewerID,
		Reason:     req.Reason,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "reject registration failed", "error", err, "request_id", requestID, "registration_id", registrationID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toDecisionResponse(decision))
}

func (h *Handler) registrationIDParam(w http.ResponseWriter, r *http.Request) (id.RegistrationID, bool) {
	registrationID, err := id.ParseRegistrationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid registration id"))
		return id.RegistrationID{}, false
	}
	return registrationID, true
}
