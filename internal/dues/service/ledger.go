package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"gatehouse/internal/dues/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/audit"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/requestcontext"
)

type UpsertConfigCommand struct {
	ActorID      id.AccountID
	Year         int
	AnnualAmount decimal.Decimal
	Active       bool
}

// UpsertConfig creates or replaces the dues configuration for a year. Existing
// ledger rows pick up the new amount on the next reconciliation.
func (s *Service) UpsertConfig(ctx context.Context, cmd UpsertConfigCommand) (*models.Config, error) {
	cfg, err := models.NewConfig(cmd.Year, cmd.AnnualAmount, cmd.Active, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.configs.Upsert(ctx, cfg); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save dues config")
	}
	s.auditor.Log(ctx, audit.ActionDuesConfigUpdated, strconv.Itoa(cfg.Year),
		"actor_id", cmd.ActorID.String(),
		"annual_amount", cfg.AnnualAmount.String(),
		"is_active", cfg.Active,
	)
	return cfg, nil
}

func (s *Service) ListConfigs(ctx context.Context) ([]*models.Config, error) {
	configs, err := s.configs.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list dues configs")
	}
	return configs, nil
}

// GetLedger returns the ledger row for a resident and year. A resident with
// no payments yet gets an unpaid row built from the active configuration.
func (s *Service) GetLedger(ctx context.Context, residentID id.ResidentID, year int) (*models.LedgerRow, error) {
	if residentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "resident ID required")
	}
	if !models.ValidYear(year) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "year out of range")
	}
	row, err := s.ledger.FindRow(ctx, residentID, year)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load ledger row")
	}

	if _, err := s.residents.FindByID(ctx, residentID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "resident not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load resident")
	}
	cfg, err := s.configs.FindByYear(ctx, year)
	if err != nil || !cfg.Active {
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load dues config")
		}
		return nil, dErrors.New(dErrors.CodeNotFound, "no dues recorded for this year")
	}
	return &models.LedgerRow{
		ResidentID:   residentID,
		Year:         year,
		AnnualAmount: cfg.AnnualAmount,
		AmountPaid:   decimal.Zero,
		Status:       models.StatusFor(decimal.Zero, cfg.AnnualAmount),
		UpdatedAt:    cfg.UpdatedAt,
	}, nil
}

// Statement is a resident's ledger rows and payment history.
type Statement struct {
	Ledger   []*models.LedgerRow
	Payments []*models.Payment
}

// StatementForAccount returns the dues position of the caller's resident.
func (s *Service) StatementForAccount(ctx context.Context, accountID id.AccountID) (*Statement, error) {
	resident, err := s.residentForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	rows, err := s.ledger.ListByResident(ctx, resident.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list ledger rows")
	}
	payments, err := s.payments.ListByResident(ctx, resident.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payments")
	}
	return &Statement{Ledger: rows, Payments: payments}, nil
}

// Reconcile recomputes the ledger rows of year from recorded entries and the
// current configuration. A zero year means the current one.
func (s *Service) Reconcile(ctx context.Context, year int) (int, error) {
	if year == 0 {
		year = requestcontext.Now(ctx).Year()
	}
	if !models.ValidYear(year) {
		return 0, dErrors.New(dErrors.CodeBadRequest, "year out of range")
	}
	var corrected []*models.LedgerRow
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		corrected, err = s.updater.Reconcile(txCtx, year, requestcontext.Now(txCtx))
		return err
	})
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to reconcile dues ledger")
	}
	if len(corrected) > 0 {
		s.auditor.Log(ctx, audit.ActionLedgerReconciled, strconv.Itoa(year), "rows", len(corrected))
	}
	if s.metrics != nil {
		s.metrics.AddReconciled(len(corrected))
	}
	return len(corrected), nil
}
