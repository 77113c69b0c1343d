package handler

import (
	"time"

	"gatehouse/internal/dues/models"
	"gatehouse/internal/dues/service"
)

type PaymentResponse struct {
	ID              string     `json:"id"`
	ResidentID      string     `json:"resident_id"`
	FeeType         string     `json:"fee_type"`
	Year            int        `json:"year"`
	Amount          string     `json:"amount"`
	Method          string     `json:"method,omitempty"`
	Reference       string     `json:"reference_number,omitempty"`
	Status          string     `json:"status"`
	VerifiedBy      string     `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int                `json:"total"`
}

type LedgerResponse struct {
	ResidentID    string    `json:"resident_id"`
	Year          int       `json:"year"`
	AnnualAmount  string    `json:"annual_amount"`
	AmountPaid    string    `json:"amount_paid"`
	Balance       string    `json:"balance"`
	Status        string    `json:"status"`
	LastPaymentID string    `json:"last_payment_id,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type VerificationResponse struct {
	Payment *PaymentResponse `json:"payment"`
	Ledger  *LedgerResponse  `json:"ledger,omitempty"`
	Applied bool             `json:"ledger_applied"`
}

type ConfigResponse struct {
	Year         int       `json:"year"`
	AnnualAmount string    `json:"annual_amount"`
	Active       bool      `json:"is_active"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ConfigListResponse struct {
	Configs []*ConfigResponse `json:"configs"`
}

type StatementResponse struct {
	Ledger   []*LedgerResponse  `json:"ledger"`
	Payments []*PaymentResponse `json:"payments"`
}

type ReconcileResponse struct {
	Year      int `json:"year"`
	Corrected int `json:"corrected"`
}

func toPaymentResponse(p *models.Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:              p.ID.String(),
		ResidentID:      p.ResidentID.String(),
		FeeType:         string(p.FeeType),
		Year:            p.Year,
		Amount:          p.Amount.StringFixed(2),
		Method:          p.Method,
		Reference:       p.Reference,
		Status:          string(p.Status),
		VerifiedAt:      p.VerifiedAt,
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
	}
	if p.VerifiedBy != nil {
		resp.VerifiedBy = p.VerifiedBy.String()
	}
	return resp
}

func toPaymentListResponse(payments []*models.Payment) *PaymentListResponse {
	out := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return &PaymentListResponse{Payments: out, Total: len(out)}
}

func toLedgerResponse(row *models.LedgerRow) *LedgerResponse {
	if row == nil {
		return nil
	}
	resp := &LedgerResponse{
		ResidentID:   row.ResidentID.String(),
		Year:         row.Year,
		AnnualAmount: row.AnnualAmount.StringFixed(2),
		AmountPaid:   row.AmountPaid.StringFixed(2),
		Balance:      row.Balance().StringFixed(2),
		Status:       string(row.Status),
		UpdatedAt:    row.UpdatedAt,
	}
	if row.LastPaymentID != nil {
		resp.LastPaymentID = row.LastPaymentID.String()
	}
	return resp
}

func toVerificationResponse(v *models.Verification) *VerificationResponse {
	return &VerificationResponse{
		Payment: toPaymentResponse(v.Payment),
		Ledger:  toLedgerResponse(v.Ledger),
		Applied: v.Applied,
	}
}

func toConfigResponse(cfg *models.Config) *ConfigResponse {
	return &ConfigResponse{
		Year:         cfg.Year,
		AnnualAmount: cfg.AnnualAmount.StringFixed(2),
		Active:       cfg.Active,
		UpdatedAt:    cfg.UpdatedAt,
	}
}

func toStatementResponse(stmt *service.Statement) *StatementResponse {
	resp := &StatementResponse{
		Ledger:   make([]*LedgerResponse, 0, len(stmt.Ledger)),
		Payments: toPaymentListResponse(stmt.Payments).Payments,
	}
	for _, row := range stmt.Ledger {
		resp.Ledger = append(resp.Ledger, toLedgerResponse(row))
	}
	return resp
}
