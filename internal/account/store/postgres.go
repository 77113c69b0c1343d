package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gatehouse/internal/account/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	txcontext "gatehouse/pkg/platform/tx"
)

// PostgresStore persists the local account mirror in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Ensure inserts the account if absent and returns the stored row. An
// existing row keeps its role; the identity provider's claim never demotes it.
func (s *PostgresStore) Ensure(ctx context.Context, account *models.Account) (*models.Account, error) {
	q := txcontext.Execer(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO accounts (id, email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, uuid.UUID(account.ID), account.Email, string(account.Role), account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ensure account: %w", err)
	}
	return s.FindByID(ctx, account.ID)
}

func (s *PostgresStore) FindByID(ctx context.Context, accountID id.AccountID) (*models.Account, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, email, role, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`, uuid.UUID(accountID))

	var a models.Account
	var rawID uuid.UUID
	var role string
	if err := row.Scan(&rawID, &a.Email, &role, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	a.ID = id.AccountID(rawID)
	a.Role = models.Role(role)
	return &a, nil
}

func (s *PostgresStore) UpdateRole(ctx context.Context, account *models.Account) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		UPDATE accounts SET role = $2, updated_at = $3 WHERE id = $1
	`, uuid.UUID(account.ID), string(account.Role), account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update account role: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account role rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
