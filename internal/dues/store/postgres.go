package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gatehouse/internal/dues/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	txcontext "gatehouse/pkg/platform/tx"
)

// PostgresConfigs persists dues configurations in PostgreSQL.
type PostgresConfigs struct {
	db *sql.DB
}

func NewPostgresConfigs(db *sql.DB) *PostgresConfigs {
	return &PostgresConfigs{db: db}
}

func (s *PostgresConfigs) Upsert(ctx context.Context, cfg *models.Config) error {
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO dues_configs (year, annual_amount, is_active, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (year) DO UPDATE
		SET annual_amount = EXCLUDED.annual_amount, is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at
	`, cfg.Year, cfg.AnnualAmount, cfg.Active, cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert dues config: %w", err)
	}
	return nil
}

func (s *PostgresConfigs) FindByYear(ctx context.Context, year int) (*models.Config, error) {
	var cfg models.Config
	err := txcontext.Execer(ctx, s.db).QueryRowContext(ctx, `
		SELECT year, annual_amount, is_active, updated_at FROM dues_configs WHERE year = $1
	`, year).Scan(&cfg.Year, &cfg.AnnualAmount, &cfg.Active, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find dues config: %w", err)
	}
	return &cfg, nil
}

func (s *PostgresConfigs) List(ctx context.Context) ([]*models.Config, error) {
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx,
		`SELECT year, annual_amount, is_active, updated_at FROM dues_configs ORDER BY year DESC`)
	if err != nil {
		return nil, fmt.Errorf("list dues configs: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Config, 0)
	for rows.Next() {
		var cfg models.Config
		if err := rows.Scan(&cfg.Year, &cfg.AnnualAmount, &cfg.Active, &cfg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan dues config: %w", err)
		}
		out = append(out, &cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dues configs: %w", err)
	}
	return out, nil
}

// PostgresPayments persists payments in PostgreSQL.
type PostgresPayments struct {
	db *sql.DB
}

func NewPostgresPayments(db *sql.DB) *PostgresPayments {
	return &PostgresPayments{db: db}
}

const paymentColumns = `id, resident_id, fee_type, year, amount, method, reference_number, status,
	verified_by, verified_at, rejection_reason, created_at`

func (s *PostgresPayments) Create(ctx context.Context, p *models.Payment) error {
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, uuid.UUID(p.ID), uuid.UUID(p.ResidentID), string(p.FeeType), p.Year, p.Amount, p.Method, p.Reference,
		string(p.Status), nullAccount(p.VerifiedBy), p.VerifiedAt, p.RejectionReason, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create payment: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (s *PostgresPayments) FindByID(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, uuid.UUID(paymentID))
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return p, nil
}

// SaveDecision writes the verification outcome only while the row is still pending.
func (s *PostgresPayments) SaveDecision(ctx context.Context, p *models.Payment) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		UPDATE payments
		SET status = $2, verified_by = $3, verified_at = $4, rejection_reason = $5
		WHERE id = $1 AND status = 'pending'
	`, uuid.UUID(p.ID), string(p.Status), nullAccount(p.VerifiedBy), p.VerifiedAt, p.RejectionReason)
	if err != nil {
		return fmt.Errorf("save payment decision: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save payment decision rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}
	if _, err := s.FindByID(ctx, p.ID); err != nil {
		return err
	}
	return sentinel.ErrAlreadyUsed
}

func (s *PostgresPayments) ListByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error) {
	return s.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE status = $1 ORDER BY created_at, id`, string(status))
}

func (s *PostgresPayments) ListByResident(ctx context.Context, residentID id.ResidentID) ([]*models.Payment, error) {
	return s.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE resident_id = $1 ORDER BY created_at, id`, uuid.UUID(residentID))
}

func (s *PostgresPayments) list(ctx context.Context, query string, arg any) ([]*models.Payment, error) {
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return out, nil
}

func (s *PostgresPayments) CountByStatus(ctx context.Context, status models.PaymentStatus) (int, error) {
	var n int
	err := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE status = $1`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var (
		p                     models.Payment
		paymentID, residentID uuid.UUID
		verifiedBy            uuid.NullUUID
		verifiedAt            sql.NullTime
		feeType, status       string
	)
	if err := row.Scan(&paymentID, &residentID, &feeType, &p.Year, &p.Amount, &p.Method, &p.Reference, &status,
		&verifiedBy, &verifiedAt, &p.RejectionReason, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.ID = id.PaymentID(paymentID)
	p.ResidentID = id.ResidentID(residentID)
	p.FeeType = models.FeeType(feeType)
	p.Status = models.PaymentStatus(status)
	if verifiedBy.Valid {
		v := id.AccountID(verifiedBy.UUID)
		p.VerifiedBy = &v
	}
	if verifiedAt.Valid {
		v := verifiedAt.Time
		p.VerifiedAt = &v
	}
	return &p, nil
}

// PostgresLedger persists ledger rows and applied payment entries.
type PostgresLedger struct {
	db *sql.DB
}

func NewPostgresLedger(db *sql.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// RecordEntry inserts the payment's entry; a replay affects zero rows.
func (s *PostgresLedger) RecordEntry(ctx context.Context, entry models.Entry) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO dues_ledger_entries (payment_id, resident_id, year, amount, applied_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (payment_id) DO NOTHING
	`, uuid.UUID(entry.PaymentID), uuid.UUID(entry.ResidentID), entry.Year, entry.Amount, entry.AppliedAt)
	if err != nil {
		return fmt.Errorf("record ledger entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record ledger entry rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

const rowColumns = `resident_id, year, annual_amount, amount_paid, status, last_payment_id, updated_at`

// LockRow takes a transaction-scoped advisory lock for (resident, year). Row
// locks cannot cover the first payment of a year because no row exists yet.
func (s *PostgresLedger) LockRow(ctx context.Context, residentID id.ResidentID, year int) error {
	if _, ok := txcontext.From(ctx); !ok {
		return errors.New("ledger lock requires a transaction")
	}
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		fmt.Sprintf("dues_ledger:%s:%d", residentID, year))
	if err != nil {
		return fmt.Errorf("lock ledger row: %w", err)
	}
	return nil
}

func (s *PostgresLedger) FindRow(ctx context.Context, residentID id.ResidentID, year int) (*models.LedgerRow, error) {
	row, err := scanRow(txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+rowColumns+` FROM dues_ledger WHERE resident_id = $1 AND year = $2`, uuid.UUID(residentID), year))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find ledger row: %w", err)
	}
	return row, nil
}

func (s *PostgresLedger) UpsertRow(ctx context.Context, row *models.LedgerRow) error {
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO dues_ledger (`+rowColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (resident_id, year) DO UPDATE
		SET annual_amount = EXCLUDED.annual_amount,
		    amount_paid = EXCLUDED.amount_paid,
		    status = EXCLUDED.status,
		    last_payment_id = EXCLUDED.last_payment_id,
		    updated_at = EXCLUDED.updated_at
	`, uuid.UUID(row.ResidentID), row.Year, row.AnnualAmount, row.AmountPaid, string(row.Status),
		nullPayment(row.LastPaymentID), row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert ledger row: %w", err)
	}
	return nil
}

func (s *PostgresLedger) ListRows(ctx context.Context, year int) ([]*models.LedgerRow, error) {
	return s.listRows(ctx, `SELECT `+rowColumns+` FROM dues_ledger WHERE year = $1 ORDER BY resident_id`, year)
}

func (s *PostgresLedger) ListByResident(ctx context.Context, residentID id.ResidentID) ([]*models.LedgerRow, error) {
	return s.listRows(ctx, `SELECT `+rowColumns+` FROM dues_ledger WHERE resident_id = $1 ORDER BY year DESC`, uuid.UUID(residentID))
}

func (s *PostgresLedger) listRows(ctx context.Context, query string, arg any) ([]*models.LedgerRow, error) {
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list ledger rows: %w", err)
	}
	defer rows.Close()

	out := make([]*models.LedgerRow, 0)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return out, nil
}

func (s *PostgresLedger) SumEntries(ctx context.Context, residentID id.ResidentID, year int) (decimal.Decimal, int, error) {
	var (
		sum decimal.Decimal
		n   int
	)
	err := txcontext.Execer(ctx, s.db).QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM dues_ledger_entries WHERE resident_id = $1 AND year = $2
	`, uuid.UUID(residentID), year).Scan(&sum, &n)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sum ledger entries: %w", err)
	}
	return sum, n, nil
}

func scanRow(row rowScanner) (*models.LedgerRow, error) {
	var (
		r          models.LedgerRow
		residentID uuid.UUID
		lastPay    uuid.NullUUID
		status     string
	)
	if err := row.Scan(&residentID, &r.Year, &r.AnnualAmount, &r.AmountPaid, &status, &lastPay, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.ResidentID = id.ResidentID(residentID)
	r.Status = models.LedgerStatus(status)
	if lastPay.Valid {
		v := id.PaymentID(lastPay.UUID)
		r.LastPaymentID = &v
	}
	return &r, nil
}
