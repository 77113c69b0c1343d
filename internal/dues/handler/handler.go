package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gatehouse/internal/dues/models"
	"gatehouse/internal/dues/service"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

// Service defines the payment and dues operations exposed over HTTP.
type Service interface {
	SubmitPayment(ctx context.Context, cmd service.SubmitPaymentCommand) (*models.Payment, error)
	VerifyPayment(ctx context.Context, cmd service.VerifyPaymentCommand) (*models.Verification, error)
	RejectPayment(ctx context.Context, cmd service.RejectPaymentCommand) (*models.Payment, error)
	ListPayments(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error)
	UpsertConfig(ctx context.Context, cmd service.UpsertConfigCommand) (*models.Config, error)
	ListConfigs(ctx context.Context) ([]*models.Config, error)
	GetLedger(ctx context.Context, residentID id.ResidentID, year int) (*models.LedgerRow, error)
	StatementForAccount(ctx context.Context, accountID id.AccountID) (*service.Statement, error)
	Reconcile(ctx context.Context, year int) (int, error)
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
	r.Post("/payments", h.HandleSubmitPayment)
	r.Get("/dues/me", h.HandleStatement)
}

// RegisterAdmin mounts staff routes. The caller applies role checks.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/payments", h.HandleListPayments)
	r.Post("/admin/payments/{id}/verify", h.HandleVerifyPayment)
	r.Post("/admin/payments/{id}/reject", h.HandleRejectPayment)
	r.Get("/admin/dues/configs", h.HandleListConfigs)
	r.Put("/admin/dues/configs/{year}", h.HandleUpsertConfig)
	r.Get("/admin/dues/ledger/{residentID}/{year}", h.HandleGetLedger)
	r.Post("/admin/dues/reconcile", h.HandleReconcile)
}

func (h *Handler) HandleSubmitPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	accountID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitPaymentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.service.SubmitPayment(ctx, service.SubmitPaymentCommand{
		AccountID: accountID,
		FeeType:   req.feeType,
		Year:      req.Year,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "submit payment failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toPaymentResponse(p))
}

// HandleStatement returns the caller's ledger rows and payment history.
func (h *Handler) HandleStatement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	accountID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	stmt, err := h.service.StatementForAccount(ctx, accountID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStatementResponse(stmt))
}

func (h *Handler) HandleListPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := models.ParsePaymentStatus(r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	payments, err := h.service.ListPayments(ctx, status)
	if err != nil {
		h.logger.ErrorContext(ctx, "list payments failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPaymentListResponse(payments))
}

func (h *Handler) HandleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	verifierID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	paymentID, ok := paymentIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.service.VerifyPayment(ctx, service.VerifyPaymentCommand{PaymentID: paymentID, VerifierID: verifierID})
	if err != nil {
		h.logger.ErrorContext(ctx, "verify payment failed", "error", err, "request_id", requestID, "payment_id", paymentID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toVerificationResponse(result))
}

func (h *Handler) HandleRejectPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	verifierID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	paymentID, ok := paymentIDParam(w, r)
	if !ok {
		return
	}
	req := &ReasonRequest{}
	if r.ContentLength != 0 {
		if req, ok = httputil.DecodeAndPrepare[ReasonRequest](w, r, h.logger, ctx, requestID); !ok {
			return
		}
	}

	p, err := h.service.RejectPayment(ctx, service.RejectPaymentCommand{
		PaymentID:  paymentID,
		VerifierID: verifierID,
		Reason:     req.Reason,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "reject payment failed", "error", err, "request_id", requestID, "payment_id", paymentID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPaymentResponse(p))
}

func (h *Handler) HandleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.service.ListConfigs(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	resp := &ConfigListResponse{Configs: make([]*ConfigResponse, 0, len(configs))}
	for _, cfg := range configs {
		resp.Configs = append(resp.Configs, toConfigResponse(cfg))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleUpsertConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actorID, err := httputil.RequireAccountID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	year, ok := yearParam(w, chi.URLParam(r, "year"))
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpsertConfigRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cfg, err := h.service.UpsertConfig(ctx, service.UpsertConfigCommand{
		ActorID:      actorID,
		Year:         year,
		AnnualAmount: req.AnnualAmount,
		Active:       req.active(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "upsert dues config failed", "error", err, "request_id", requestID, "year", year)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toConfigResponse(cfg))
}

func (h *Handler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	residentID, err := id.ParseResidentID(chi.URLParam(r, "residentID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid resident id"))
		return
	}
	year, ok := yearParam(w, chi.URLParam(r, "year"))
	if !ok {
		return
	}
	row, err := h.service.GetLedger(r.Context(), residentID, year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLedgerResponse(row))
}

// HandleReconcile runs ledger reconciliation on demand; ?year= defaults to the
// current year.
func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		var ok bool
		if year, ok = yearParam(w, raw); !ok {
			return
		}
	}
	n, err := h.service.Reconcile(ctx, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconcile dues ledger failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	if year == 0 {
		year = requestcontext.Now(ctx).Year()
	}
	httputil.WriteJSON(w, http.StatusOK, &ReconcileResponse{Year: year, Corrected: n})
}

func paymentIDParam(w http.ResponseWriter, r *http.Request) (id.PaymentID, bool) {
	paymentID, err := id.ParsePaymentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid payment id"))
		return id.PaymentID{}, false
	}
	return paymentID, true
}

func yearParam(w http.ResponseWriter, raw string) (int, bool) {
	year, err := strconv.Atoi(raw)
	if err != nil || !models.ValidYear(year) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid year"))
		return 0, false
	}
	return year, true
}
