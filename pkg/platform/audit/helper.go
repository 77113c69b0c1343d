package audit

import (
	"context"
	"log/slog"

	id "gatehouse/pkg/domain"
	"gatehouse/pkg/requestcontext"
)

// Emitter persists audit events. Satisfied by InMemoryStore and the Postgres store.
type Emitter interface {
	Append(ctx context.Context, event Event) error
}

// Logger writes audit lines to the structured log and, when an emitter is
// configured, appends them to the audit trail.
type Logger struct {
	textLogger *slog.Logger
	emitter    Emitter
}

// NewLogger accepts nil for either argument.
func NewLogger(textLogger *slog.Logger, emitter Emitter) *Logger {
	return &Logger{textLogger: textLogger, emitter: emitter}
}

// Log records action against subject. attributes are slog key/value pairs;
// "actor_id" and "reason" are lifted into the persisted event.
//
//	logger.Log(ctx, audit.ActionRegistrationApproved, req.ID.String(), "actor_id", reviewer.String())
func (l *Logger) Log(ctx context.Context, action Action, subject string, attributes ...any) {
	if l == nil {
		return
	}
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	l.logToText(ctx, action, subject, attributes)
	l.emitToAudit(ctx, action, subject, requestID, attributes)
}

func (l *Logger) logToText(ctx context.Context, action Action, subject string, attributes []any) {
	if l.textLogger == nil {
		return
	}
	args := append(attributes, "event", string(action), "subject", subject, "log_type", "audit")
	l.textLogger.InfoContext(ctx, string(action), args...)
}

func (l *Logger) emitToAudit(ctx context.Context, action Action, subject, requestID string, attributes []any) {
	if l.emitter == nil {
		return
	}
	actor, _ := id.ParseAccountID(extractString(attributes, "actor_id")) //nolint:errcheck // best-effort extraction
	err := l.emitter.Append(ctx, Event{
		Timestamp: requestcontext.Now(ctx),
		ActorID:   actor,
		Action:    string(action),
		Subject:   subject,
		Reason:    extractString(attributes, "reason"),
		RequestID: requestID,
	})
	if err != nil && l.textLogger != nil {
		l.textLogger.ErrorContext(ctx, "failed to emit audit event", "error", err, "event", string(action))
	}
}

// extractString returns the string value following key in a slog-style
// key/value list.
func extractString(attributes []any, key string) string {
	for i := 0; i+1 < len(attributes); i += 2 {
		if k, ok := attributes[i].(string); ok && k == key {
			if v, ok := attributes[i+1].(string); ok {
				return v
			}
		}
	}
	return ""
}
