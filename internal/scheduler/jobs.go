package scheduler

import (
	"context"
	"log/slog"
)

// StickerExpirer marks active stickers past their expiry date as expired.
type StickerExpirer interface {
	ExpireStickers(ctx context.Context) (int, error)
}

// LedgerReconciler recomputes ledger rows for a year; 0 means the current year.
type LedgerReconciler interface {
	Reconcile(ctx context.Context, year int) (int, error)
}

const (
	JobStickerExpiry   = "sticker_expiry"
	JobLedgerReconcile = "ledger_reconcile"
)

func StickerExpiryJob(schedule string, svc StickerExpirer, logger *slog.Logger) Job {
	return Job{
		Name:     JobStickerExpiry,
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			n, err := svc.ExpireStickers(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.InfoContext(ctx, "stickers expired", "count", n)
			}
			return nil
		},
	}
}

func LedgerReconcileJob(schedule string, svc LedgerReconciler, logger *slog.Logger) Job {
	return Job{
		Name:     JobLedgerReconcile,
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			n, err := svc.Reconcile(ctx, 0)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.InfoContext(ctx, "ledger rows reconciled", "count", n)
			}
			return nil
		},
	}
}
