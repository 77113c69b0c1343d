// Package ledger applies verified annual-dues payments to the per-resident,
// per-year dues ledger.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gatehouse/internal/dues/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
)

type ConfigFinder interface {
	FindByYear(ctx context.Context, year int) (*models.Config, error)
}

// Store persists ledger rows and the payment entries that built them.
// LockRow serializes writers of one (resident, year) until the surrounding
// transaction ends. RecordEntry returns sentinel.ErrAlreadyUsed when the
// payment was applied before.
type Store interface {
	LockRow(ctx context.Context, residentID id.ResidentID, year int) error
	RecordEntry(ctx context.Context, entry models.Entry) error
	FindRow(ctx context.Context, residentID id.ResidentID, year int) (*models.LedgerRow, error)
	UpsertRow(ctx context.Context, row *models.LedgerRow) error
	ListRows(ctx context.Context, year int) ([]*models.LedgerRow, error)
	SumEntries(ctx context.Context, residentID id.ResidentID, year int) (decimal.Decimal, int, error)
}

// Updater owns the ledger arithmetic. Callers provide the transaction.
type Updater struct {
	configs ConfigFinder
	store   Store
}

func New(configs ConfigFinder, store Store) *Updater {
	return &Updater{configs: configs, store: store}
}

// Next computes the row after applying amount. prev may be nil.
func Next(prev *models.LedgerRow, residentID id.ResidentID, year int, annual, amount decimal.Decimal, paymentID id.PaymentID, now time.Time) *models.LedgerRow {
	paid := amount
	if prev != nil {
		paid = prev.AmountPaid.Add(amount)
	}
	pid := paymentID
	return &models.LedgerRow{
		ResidentID:    residentID,
		Year:          year,
		AnnualAmount:  annual,
		AmountPaid:    paid,
		Status:        models.StatusFor(paid, annual),
		LastPaymentID: &pid,
		UpdatedAt:     now,
	}
}

// AnnualAmount resolves the amount due for year: the active configuration, or
// fallback when none is active.
func (u *Updater) AnnualAmount(ctx context.Context, year int, fallback decimal.Decimal) (decimal.Decimal, error) {
	cfg, err := u.configs.FindByYear(ctx, year)
	switch {
	case err == nil && cfg.Active:
		return cfg.AnnualAmount, nil
	case err == nil, errors.Is(err, sentinel.ErrNotFound):
		return fallback, nil
	default:
		return decimal.Zero, fmt.Errorf("find dues config: %w", err)
	}
}

// Apply adds a verified payment to its ledger row. applied is false when the
// payment had already been recorded, in which case the current row is
// returned unchanged.
func (u *Updater) Apply(ctx context.Context, p *models.Payment, now time.Time) (row *models.LedgerRow, applied bool, err error) {
	if err := u.store.LockRow(ctx, p.ResidentID, p.Year); err != nil {
		return nil, false, fmt.Errorf("lock ledger row: %w", err)
	}
	err = u.store.RecordEntry(ctx, models.Entry{
		PaymentID:  p.ID,
		ResidentID: p.ResidentID,
		Year:       p.Year,
		Amount:     p.Amount,
		AppliedAt:  now,
	})
	if errors.Is(err, sentinel.ErrAlreadyUsed) {
		current, findErr := u.store.FindRow(ctx, p.ResidentID, p.Year)
		if findErr != nil {
			return nil, false, fmt.Errorf("find ledger row: %w", findErr)
		}
		return current, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("record ledger entry: %w", err)
	}

	prev, err := u.store.FindRow(ctx, p.ResidentID, p.Year)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, fmt.Errorf("find ledger row: %w", err)
	}
	annual, err := u.AnnualAmount(ctx, p.Year, p.Amount)
	if err != nil {
		return nil, false, err
	}

	row = Next(prev, p.ResidentID, p.Year, annual, p.Amount, p.ID, now)
	if err := u.store.UpsertRow(ctx, row); err != nil {
		return nil, false, fmt.Errorf("upsert ledger row: %w", err)
	}
	return row, true, nil
}

// Reconcile recomputes every row of year from its recorded entries and the
// current configuration, returning the rows it corrected. Rows without
// entries keep their stored amount.
func (u *Updater) Reconcile(ctx context.Context, year int, now time.Time) ([]*models.LedgerRow, error) {
	rows, err := u.store.ListRows(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list ledger rows: %w", err)
	}
	var corrected []*models.LedgerRow
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return corrected, err
		}
		if err := u.store.LockRow(ctx, row.ResidentID, year); err != nil {
			return corrected, fmt.Errorf("lock ledger row: %w", err)
		}
		paid, entries, err := u.store.SumEntries(ctx, row.ResidentID, year)
		if err != nil {
			return corrected, fmt.Errorf("sum ledger entries: %w", err)
		}
		if entries == 0 {
			paid = row.AmountPaid
		}
		annual, err := u.AnnualAmount(ctx, year, row.AnnualAmount)
		if err != nil {
			return corrected, err
		}
		status := models.StatusFor(paid, annual)
		if paid.Equal(row.AmountPaid) && annual.Equal(row.AnnualAmount) && status == row.Status {
			continue
		}
		row.AmountPaid = paid
		row.AnnualAmount = annual
		row.Status = status
		row.UpdatedAt = now
		if err := u.store.UpsertRow(ctx, row); err != nil {
			return corrected, fmt.Errorf("upsert ledger row: %w", err)
		}
		corrected = append(corrected, row)
	}
	return corrected, nil
}
