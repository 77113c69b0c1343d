package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"gatehouse/internal/registration/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	txcontext "gatehouse/pkg/platform/tx"
)

// PostgresStore persists registration requests in PostgreSQL.
type PostgresStore struct {
	db      *sql.DB
	typeMap *pgtype.Map
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, typeMap: pgtype.NewMap()}
}

const requestColumns = `
	id, account_id, email, first_name, last_name, phone,
	phase, block, lot, street, document_urls, match_confidence,
	matched_resident_id, status, reviewed_by, reviewed_at,
	rejection_reason, resident_id, created_at`

func (s *PostgresStore) Create(ctx context.Context, req *models.Request) error {
	docs := req.DocumentURLs
	if docs == nil {
		docs = []string{}
	}
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO registration_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`,
		uuid.UUID(req.ID), uuid.UUID(req.AccountID), req.Email, req.FirstName, req.LastName, req.Phone,
		req.Address.Phase, req.Address.Block, req.Address.Lot, req.Address.Street,
		docs, string(req.MatchConfidence), nullResident(req.MatchedResidentID),
		string(req.Status), nullAccount(req.ReviewedBy), req.ReviewedAt,
		req.RejectionReason, nullResident(req.ResidentID), req.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create registration request: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create registration request: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, requestID id.RegistrationID) (*models.Request, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM registration_requests WHERE id = $1`, uuid.UUID(requestID))
	req, err := s.scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registration request: %w", err)
	}
	return req, nil
}

// SaveDecision writes the review outcome only while the row is still pending.
func (s *PostgresStore) SaveDecision(ctx context.Context, req *models.Request) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		UPDATE registration_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, rejection_reason = $5, resident_id = $6
		WHERE id = $1 AND status = 'pending'
	`,
		uuid.UUID(req.ID), string(req.Status), nullAccount(req.ReviewedBy), req.ReviewedAt,
		req.RejectionReason, nullResident(req.ResidentID),
	)
	if err != nil {
		return fmt.Errorf("save registration decision: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save registration decision rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}
	var exists bool
	if err := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM registration_requests WHERE id = $1)`, uuid.UUID(req.ID)).Scan(&exists); err != nil {
		return fmt.Errorf("check registration request exists: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrAlreadyUsed
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.Status) ([]*models.Request, error) {
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx,
		`SELECT `+requestColumns+` FROM registration_requests WHERE status = $1 ORDER BY created_at, id`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list registration requests: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Request, 0)
	for rows.Next() {
		req, err := s.scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration request: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registration requests: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindLatestForAccount(ctx context.Context, accountID id.AccountID) (*models.Request, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM registration_requests WHERE account_id = $1 ORDER BY created_at DESC LIMIT 1`,
		uuid.UUID(accountID))
	req, err := s.scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find latest registration request: %w", err)
	}
	return req, nil
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status models.Status) (int, error) {
	var n int
	err := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registration_requests WHERE status = $1`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registration requests: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanRequest(row rowScanner) (*models.Request, error) {
	var (
		req                             models.Request
		reqID, accountID                uuid.UUID
		matched, reviewedBy, residentID uuid.NullUUID
		reviewedAt                      sql.NullTime
		confidence, status              string
		docs                            []string
	)
	if err := row.Scan(
		&reqID, &accountID, &req.Email, &req.FirstName, &req.LastName, &req.Phone,
		&req.Address.Phase, &req.Address.Block, &req.Address.Lot, &req.Address.Street,
		s.typeMap.SQLScanner(&docs), &confidence,
		&matched, &status, &reviewedBy, &reviewedAt,
		&req.RejectionReason, &residentID, &req.CreatedAt,
	); err != nil {
		return nil, err
	}
	req.ID = id.RegistrationID(reqID)
	req.AccountID = id.AccountID(accountID)
	req.DocumentURLs = docs
	req.MatchConfidence = models.Confidence(confidence)
	req.Status = models.Status(status)
	if matched.Valid {
		v := id.ResidentID(matched.UUID)
		req.MatchedResidentID = &v
	}
	if residentID.Valid {
		v := id.ResidentID(residentID.UUID)
		req.ResidentID = &v
	}
	if reviewedBy.Valid {
		v := id.AccountID(reviewedBy.UUID)
		req.ReviewedBy = &v
	}
	if reviewedAt.Valid {
		v := reviewedAt.Time
		req.ReviewedAt = &v
	}
	return &req, nil
}

func nullResident(v *id.ResidentID) any {
	if v == nil {
		return nil
	}
	return uuid.UUID(*v)
}

func nullAccount(v *id.AccountID) any {
	if v == nil {
		return nil
	}
	return uuid.UUID(*v)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
