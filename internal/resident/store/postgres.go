package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	txcontext "gatehouse/pkg/platform/tx"
)

// PostgresStore persists residents in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const residentColumns = `
	id, first_name, middle_name, last_name, email, phone,
	phase, block, lot, street, property_address, is_owner,
	linked_account_id, created_at, updated_at`

// unitPredicate compares the unit tuple case-insensitively against $1..$3.
const unitPredicate = `
	LOWER(TRIM(phase)) = LOWER(TRIM($1))
	AND LOWER(TRIM(block)) = LOWER(TRIM($2))
	AND LOWER(TRIM(lot)) = LOWER(TRIM($3))`

func (s *PostgresStore) Create(ctx context.Context, r *models.Resident) error {
	var linked any
	if r.LinkedAccountID != nil {
		linked = uuid.UUID(*r.LinkedAccountID)
	}
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO residents (`+residentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		uuid.UUID(r.ID), r.FirstName, r.MiddleName, r.LastName, r.Email, r.Phone,
		r.Address.Phase, r.Address.Block, r.Address.Lot, r.Address.Street,
		r.PropertyAddress, r.IsOwner, linked, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create resident: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create resident: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, residentID id.ResidentID) (*models.Resident, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+residentColumns+` FROM residents WHERE id = $1`, uuid.UUID(residentID))
	r, err := scanResident(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find resident by id: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) ([]*models.Resident, error) {
	return s.query(ctx, "find residents by email",
		`SELECT `+residentColumns+` FROM residents WHERE email = $1 ORDER BY created_at, id`, email)
}

func (s *PostgresStore) FindByUnit(ctx context.Context, addr models.Address) ([]*models.Resident, error) {
	return s.query(ctx, "find residents by unit",
		`SELECT `+residentColumns+` FROM residents WHERE `+unitPredicate+` ORDER BY created_at, id`,
		addr.Phase, addr.Block, addr.Lot)
}

func (s *PostgresStore) FindLinkedAtUnit(ctx context.Context, addr models.Address) (*models.Resident, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+residentColumns+` FROM residents
		 WHERE linked_account_id IS NOT NULL AND `+unitPredicate+`
		 ORDER BY created_at, id LIMIT 1`,
		addr.Phase, addr.Block, addr.Lot)
	r, err := scanResident(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find linked resident at unit: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) FindByLinkedAccount(ctx context.Context, accountID id.AccountID) (*models.Resident, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+residentColumns+` FROM residents WHERE linked_account_id = $1`, uuid.UUID(accountID))
	r, err := scanResident(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find resident by account: %w", err)
	}
	return r, nil
}

// LinkAccount is a conditional write: a resident that is already linked
// affects zero rows and yields sentinel.ErrAlreadyUsed.
func (s *PostgresStore) LinkAccount(ctx context.Context, residentID id.ResidentID, accountID id.AccountID, now time.Time) error {
	q := txcontext.Execer(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE residents
		SET linked_account_id = $2, updated_at = $3
		WHERE id = $1 AND linked_account_id IS NULL
	`, uuid.UUID(residentID), uuid.UUID(accountID), now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account already linked to another resident: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("link resident account: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("link resident account rows: %w", err)
	}
	if rows == 1 {
		return nil
	}

	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM residents WHERE id = $1)`,
		uuid.UUID(residentID)).Scan(&exists); err != nil {
		return fmt.Errorf("link resident account lookup: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrAlreadyUsed
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := txcontext.Execer(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM residents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count residents: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) query(ctx context.Context, op, query string, args ...any) ([]*models.Resident, error) {
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*models.Resident
	for rows.Next() {
		r, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}

type residentRow interface {
	Scan(dest ...any) error
}

func scanResident(row residentRow) (*models.Resident, error) {
	var r models.Resident
	var rawID uuid.UUID
	var linked uuid.NullUUID
	if err := row.Scan(
		&rawID, &r.FirstName, &r.MiddleName, &r.LastName, &r.Email, &r.Phone,
		&r.Address.Phase, &r.Address.Block, &r.Address.Lot, &r.Address.Street,
		&r.PropertyAddress, &r.IsOwner, &linked, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.ID = id.ResidentID(rawID)
	if linked.Valid {
		acct := id.AccountID(linked.UUID)
		r.LinkedAccountID = &acct
	}
	return &r, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
