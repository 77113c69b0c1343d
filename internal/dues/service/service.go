// Package service implements resident payments, staff verification and the
// annual dues ledger that verified payments feed.
package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"gatehouse/internal/dues/ledger"
	duesmetrics "gatehouse/internal/dues/metrics"
	"gatehouse/internal/dues/models"
	"gatehouse/internal/platform/tracer"
	residentmodels "gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/audit"
)

type ConfigStore interface {
	Upsert(ctx context.Context, cfg *models.Config) error
	FindByYear(ctx context.Context, year int) (*models.Config, error)
	List(ctx context.Context) ([]*models.Config, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	FindByID(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error)
	SaveDecision(ctx context.Context, p *models.Payment) error
	ListByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error)
	ListByResident(ctx context.Context, residentID id.ResidentID) ([]*models.Payment, error)
	CountByStatus(ctx context.Context, status models.PaymentStatus) (int, error)
}

type LedgerStore interface {
	ledger.Store
	ListByResident(ctx context.Context, residentID id.ResidentID) ([]*models.LedgerRow, error)
}

type ResidentFinder interface {
	FindByID(ctx context.Context, residentID id.ResidentID) (*residentmodels.Resident, error)
	FindByLinkedAccount(ctx context.Context, accountID id.AccountID) (*residentmodels.Resident, error)
}

// Notifier sends best-effort payment notifications.
type Notifier interface {
	PaymentVerified(ctx context.Context, to string, amount decimal.Decimal, year int)
	PaymentRejected(ctx context.Context, to string, amount decimal.Decimal, reason string)
}

type Service struct {
	configs   ConfigStore
	payments  PaymentStore
	ledger    LedgerStore
	residents ResidentFinder
	updater   *ledger.Updater
	tx        StoreTx
	notifier  Notifier
	tracer    tracer.Tracer
	auditor   *audit.Logger
	logger    *slog.Logger
	metrics   *duesmetrics.Metrics
}

func New(configs ConfigStore, payments PaymentStore, ledgerStore LedgerStore, residents ResidentFinder, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	tx := cfg.tx
	if tx == nil {
		tx = &inMemoryStoreTx{}
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	tr := cfg.tracer
	if tr == nil {
		tr = tracer.NewNoop()
	}
	return &Service{
		configs:   configs,
		payments:  payments,
		ledger:    ledgerStore,
		residents: residents,
		updater:   ledger.New(configs, ledgerStore),
		tx:        tx,
		notifier:  cfg.notifier,
		tracer:    tr,
		auditor:   audit.NewLogger(logger, cfg.auditor),
		logger:    logger,
		metrics:   cfg.metrics,
	}
}
