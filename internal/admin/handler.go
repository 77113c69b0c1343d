package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/audit"
	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

// DashboardService defines the dashboard reads exposed over HTTP.
type DashboardService interface {
	GetSummary(ctx context.Context) (*Summary, error)
	GetRecentAuditEvents(ctx context.Context, limit int) ([]audit.Event, error)
}

type Handler struct {
	service DashboardService
	logger  *slog.Logger
}

func New(service DashboardService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the staff routes. The caller applies role checks.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/dashboard", h.HandleGetSummary)
	r.Get("/admin/audit/recent", h.HandleGetRecentAuditEvents)
}

func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	summary, err := h.service.GetSummary(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard summary", "error", err, "request_id", requestID)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load dashboard"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

type AuditEventsResponse struct {
	Events []audit.Event `json:"events"`
	Count  int           `json:"count"`
}

const defaultAuditLimit = 50

func (h *Handler) HandleGetRecentAuditEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	events, err := h.service.GetRecentAuditEvents(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit events", "error", err, "request_id", requestID)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AuditEventsResponse{Events: events, Count: len(events)})
}
