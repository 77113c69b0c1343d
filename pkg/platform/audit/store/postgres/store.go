package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "gatehouse/pkg/domain"
	audit "gatehouse/pkg/platform/audit"
	txcontext "gatehouse/pkg/platform/tx"
)

// Store implements the audit emitter on the audit_events table. Appends join
// the caller's transaction when one is open, so an audit row commits or rolls
// back with the change it describes.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	var actor any
	if !event.ActorID.IsNil() {
		actor = uuid.UUID(event.ActorID)
	}
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO audit_events (id, occurred_at, actor_id, action, subject, reason, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.New(), event.Timestamp, actor, event.Action, event.Subject, event.Reason, event.RequestID)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListRecent returns the newest events first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	limit = clampLimit(limit)
	rows, err := s.db.QueryContext(ctx, `
		SELECT occurred_at, actor_id, action, subject, reason, request_id
		FROM audit_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	events := make([]audit.Event, 0)
	for rows.Next() {
		var (
			event audit.Event
			actor uuid.NullUUID
		)
		if err := rows.Scan(&event.Timestamp, &actor, &event.Action, &event.Subject, &event.Reason, &event.RequestID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if actor.Valid {
			event.ActorID = id.AccountID(actor.UUID)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

const maxListLimit = 500

func clampLimit(limit int) int {
	if limit <= 0 || limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
