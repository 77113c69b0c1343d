package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"gatehouse/internal/vehicle/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	txcontext "gatehouse/pkg/platform/tx"
)

// PostgresVehicles persists vehicles in PostgreSQL.
type PostgresVehicles struct {
	db *sql.DB
}

func NewPostgresVehicles(db *sql.DB) *PostgresVehicles {
	return &PostgresVehicles{db: db}
}

const vehicleColumns = `id, resident_id, plate_number, make, model, color, vehicle_type, created_at, updated_at`

func (s *PostgresVehicles) Create(ctx context.Context, v *models.Vehicle) error {
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO vehicles (`+vehicleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.UUID(v.ID), uuid.UUID(v.ResidentID), v.PlateNumber, v.Make, v.Model, v.Color, v.Type, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create vehicle: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

func (s *PostgresVehicles) Update(ctx context.Context, v *models.Vehicle) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		UPDATE vehicles
		SET resident_id = $2, make = $3, model = $4, color = $5, vehicle_type = $6, updated_at = $7
		WHERE id = $1
	`, uuid.UUID(v.ID), uuid.UUID(v.ResidentID), v.Make, v.Model, v.Color, v.Type, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	return requireAffected(res, "update vehicle")
}

func (s *PostgresVehicles) Delete(ctx context.Context, vehicleID id.VehicleID) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, uuid.UUID(vehicleID))
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return requireAffected(res, "delete vehicle")
}

func (s *PostgresVehicles) FindByID(ctx context.Context, vehicleID id.VehicleID) (*models.Vehicle, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, uuid.UUID(vehicleID))
	return scanOneVehicle(row, "find vehicle")
}

func (s *PostgresVehicles) FindByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE plate_number = $1`, models.NormalizePlate(plate))
	return scanOneVehicle(row, "find vehicle by plate")
}

func (s *PostgresVehicles) ListByResident(ctx context.Context, residentID id.ResidentID) ([]*models.Vehicle, error) {
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE resident_id = $1 ORDER BY plate_number`, uuid.UUID(residentID))
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return out, nil
}

func scanOneVehicle(row rowScanner, op string) (*models.Vehicle, error) {
	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func scanVehicle(row rowScanner) (*models.Vehicle, error) {
	var (
		v                     models.Vehicle
		vehicleID, residentID uuid.UUID
	)
	if err := row.Scan(&vehicleID, &residentID, &v.PlateNumber, &v.Make, &v.Model, &v.Color, &v.Type, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.ID = id.VehicleID(vehicleID)
	v.ResidentID = id.ResidentID(residentID)
	return &v, nil
}

// PostgresStickers persists stickers in PostgreSQL. The code column carries
// the unique constraint that backs the generator's collision policy.
type PostgresStickers struct {
	db *sql.DB
}

func NewPostgresStickers(db *sql.DB) *PostgresStickers {
	return &PostgresStickers{db: db}
}

const stickerColumns = `id, code, resident_id, vehicle_id, status, issued_at, expires_at, amount_paid, revoked_at, revoke_reason`

func (s *PostgresStickers) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM vehicle_stickers WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sticker code: %w", err)
	}
	return exists, nil
}

func (s *PostgresStickers) Create(ctx context.Context, st *models.Sticker) error {
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO vehicle_stickers (`+stickerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, uuid.UUID(st.ID), st.Code, uuid.UUID(st.ResidentID), nullVehicle(st.VehicleID), string(st.Status),
		st.IssuedAt, st.ExpiresAt, st.AmountPaid, st.RevokedAt, st.RevokeReason)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create sticker: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create sticker: %w", err)
	}
	return nil
}

func (s *PostgresStickers) Delete(ctx context.Context, stickerID id.StickerID) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `DELETE FROM vehicle_stickers WHERE id = $1`, uuid.UUID(stickerID))
	if err != nil {
		return fmt.Errorf("delete sticker: %w", err)
	}
	return requireAffected(res, "delete sticker")
}

func (s *PostgresStickers) FindByID(ctx context.Context, stickerID id.StickerID) (*models.Sticker, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+stickerColumns+` FROM vehicle_stickers WHERE id = $1`, uuid.UUID(stickerID))
	st, err := scanSticker(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find sticker: %w", err)
	}
	return st, nil
}

// SaveRevocation persists a revoked sticker only while it is still active.
func (s *PostgresStickers) SaveRevocation(ctx context.Context, st *models.Sticker) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		UPDATE vehicle_stickers
		SET status = $2, revoked_at = $3, revoke_reason = $4
		WHERE id = $1 AND status = 'ACTIVE'
	`, uuid.UUID(st.ID), string(st.Status), st.RevokedAt, st.RevokeReason)
	if err != nil {
		return fmt.Errorf("revoke sticker: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke sticker rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}
	if _, err := s.FindByID(ctx, st.ID); err != nil {
		return err
	}
	return sentinel.ErrInvalidState
}

func (s *PostgresStickers) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		UPDATE vehicle_stickers SET status = 'EXPIRED'
		WHERE status = 'ACTIVE' AND expires_at <= $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("expire stickers: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expire stickers rows affected: %w", err)
	}
	return int(n), nil
}

func (s *PostgresStickers) ListByResident(ctx context.Context, residentID id.ResidentID) ([]*models.Sticker, error) {
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx,
		`SELECT `+stickerColumns+` FROM vehicle_stickers WHERE resident_id = $1 ORDER BY issued_at DESC`, uuid.UUID(residentID))
	if err != nil {
		return nil, fmt.Errorf("list stickers: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Sticker, 0)
	for rows.Next() {
		st, err := scanSticker(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sticker: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stickers: %w", err)
	}
	return out, nil
}

func (s *PostgresStickers) CountByStatus(ctx context.Context, status models.StickerStatus) (int, error) {
	var n int
	err := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vehicle_stickers WHERE status = $1`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stickers: %w", err)
	}
	return n, nil
}

func scanSticker(row rowScanner) (*models.Sticker, error) {
	var (
		st                    models.Sticker
		stickerID, residentID uuid.UUID
		vehicleID             uuid.NullUUID
		status                string
		revokedAt             sql.NullTime
	)
	if err := row.Scan(&stickerID, &st.Code, &residentID, &vehicleID, &status,
		&st.IssuedAt, &st.ExpiresAt, &st.AmountPaid, &revokedAt, &st.RevokeReason); err != nil {
		return nil, err
	}
	st.ID = id.StickerID(stickerID)
	st.ResidentID = id.ResidentID(residentID)
	st.Status = models.StickerStatus(status)
	if vehicleID.Valid {
		v := id.VehicleID(vehicleID.UUID)
		st.VehicleID = &v
	}
	if revokedAt.Valid {
		v := revokedAt.Time
		st.RevokedAt = &v
	}
	return &st, nil
}

// PostgresRequests persists vehicle requests in PostgreSQL.
type PostgresRequests struct {
	db *sql.DB
}

func NewPostgresRequests(db *sql.DB) *PostgresRequests {
	return &PostgresRequests{db: db}
}

const requestColumns = `
	id, resident_id, plate_number, make, model, color, vehicle_type, amount_paid,
	status, reviewed_by, reviewed_at, rejection_reason, sticker_id, created_at`

func (s *PostgresRequests) Create(ctx context.Context, req *models.Request) error {
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO vehicle_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, uuid.UUID(req.ID), uuid.UUID(req.ResidentID), req.PlateNumber, req.Make, req.Model, req.Color, req.Type,
		req.AmountPaid, string(req.Status), nullAccount(req.ReviewedBy), req.ReviewedAt, req.RejectionReason,
		nullSticker(req.StickerID), req.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create vehicle request: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create vehicle request: %w", err)
	}
	return nil
}

func (s *PostgresRequests) FindByID(ctx context.Context, requestID id.VehicleRequestID) (*models.Request, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM vehicle_requests WHERE id = $1`, uuid.UUID(requestID))
	return scanOneRequest(row, "find vehicle request")
}

func (s *PostgresRequests) FindPendingByPlate(ctx context.Context, plate string) (*models.Request, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM vehicle_requests WHERE plate_number = $1 AND status = 'pending' LIMIT 1`,
		models.NormalizePlate(plate))
	return scanOneRequest(row, "find pending vehicle request")
}

// SaveDecision writes the review outcome only while the row is still pending.
func (s *PostgresRequests) SaveDecision(ctx context.Context, req *models.Request) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		UPDATE vehicle_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, rejection_reason = $5, sticker_id = $6
		WHERE id = $1 AND status = 'pending'
	`, uuid.UUID(req.ID), string(req.Status), nullAccount(req.ReviewedBy), req.ReviewedAt,
		req.RejectionReason, nullSticker(req.StickerID))
	if err != nil {
		return fmt.Errorf("save vehicle request decision: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save vehicle request decision rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}
	if _, err := s.FindByID(ctx, req.ID); err != nil {
		return err
	}
	return sentinel.ErrAlreadyUsed
}

func (s *PostgresRequests) ListByStatus(ctx context.Context, status models.RequestStatus) ([]*models.Request, error) {
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx,
		`SELECT `+requestColumns+` FROM vehicle_requests WHERE status = $1 ORDER BY created_at, id`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list vehicle requests: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle request: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicle requests: %w", err)
	}
	return out, nil
}

func (s *PostgresRequests) CountByStatus(ctx context.Context, status models.RequestStatus) (int, error) {
	var n int
	err := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vehicle_requests WHERE status = $1`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count vehicle requests: %w", err)
	}
	return n, nil
}

func scanOneRequest(row rowScanner, op string) (*models.Request, error) {
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return req, nil
}

func scanRequest(row rowScanner) (*models.Request, error) {
	var (
		req                   models.Request
		requestID, residentID uuid.UUID
		reviewedBy, stickerID uuid.NullUUID
		reviewedAt            sql.NullTime
		status                string
	)
	if err := row.Scan(&requestID, &residentID, &req.PlateNumber, &req.Make, &req.Model, &req.Color, &req.Type,
		&req.AmountPaid, &status, &reviewedBy, &reviewedAt, &req.RejectionReason, &stickerID, &req.CreatedAt); err != nil {
		return nil, err
	}
	req.ID = id.VehicleRequestID(requestID)
	req.ResidentID = id.ResidentID(residentID)
	req.Status = models.RequestStatus(status)
	if reviewedBy.Valid {
		v := id.AccountID(reviewedBy.UUID)
		req.ReviewedBy = &v
	}
	if reviewedAt.Valid {
		v := reviewedAt.Time
		req.ReviewedAt = &v
	}
	if stickerID.Valid {
		v := id.StickerID(stickerID.UUID)
		req.StickerID = &v
	}
	return &req, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullVehicle(v *id.VehicleID) any {
	if v == nil {
		return nil
	}
	return uuid.UUID(*v)
}

func nullSticker(v *id.StickerID) any {
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
