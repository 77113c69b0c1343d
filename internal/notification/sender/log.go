// Package sender holds the notification transports selected by NOTIFY_DRIVER.
package sender

import (
	"context"
	"log/slog"

	"gatehouse/internal/notification/models"
)

// LogSender writes notifications to the structured log. It is the dev default.
type LogSender struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg models.Message) error {
	s.logger.InfoContext(ctx, "notification",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"log_type", "notification",
	)
	return nil
}
