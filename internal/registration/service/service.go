// Package service implements the homeowner registration workflow: matching a
// signup against resident records, auto-linking confident matches, and the
// staff approval resolver for everything else.
package service

import (
	"context"
	"log/slog"
	"time"

	accountmodels "gatehouse/internal/account/models"
	"gatehouse/internal/platform/tracer"
	"gatehouse/internal/registration/guard"
	"gatehouse/internal/registration/matcher"
	registrationmetrics "gatehouse/internal/registration/metrics"
	"gatehouse/internal/registration/models"
	residentmodels "gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/audit"
)

// Store interfaces define persistence contracts.

type RequestStore interface {
	Create(ctx context.Context, req *models.Request) error
	FindByID(ctx context.Context, requestID id.RegistrationID) (*models.Request, error)
	SaveDecision(ctx context.Context, req *models.Request) error
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Request, error)
	FindLatestForAccount(ctx context.Context, accountID id.AccountID) (*models.Request, error)
	CountByStatus(ctx context.Context, status models.Status) (int, error)
}

type ResidentStore interface {
	Create(ctx context.Context, r *residentmodels.Resident) error
	FindByID(ctx context.Context, residentID id.ResidentID) (*residentmodels.Resident, error)
	FindByEmail(ctx context.Context, email string) ([]*residentmodels.Resident, error)
	FindByUnit(ctx context.Context, addr residentmodels.Address) ([]*residentmodels.Resident, error)
	FindLinkedAtUnit(ctx context.Context, addr residentmodels.Address) (*residentmodels.Resident, error)
	FindByLinkedAccount(ctx context.Context, accountID id.AccountID) (*residentmodels.Resident, error)
	LinkAccount(ctx context.Context, residentID id.ResidentID, accountID id.AccountID, now time.Time) error
}

type AccountStore interface {
	Ensure(ctx context.Context, account *accountmodels.Account) (*accountmodels.Account, error)
	FindByID(ctx context.Context, accountID id.AccountID) (*accountmodels.Account, error)
	UpdateRole(ctx context.Context, account *accountmodels.Account) error
}

// Notifier sends best-effort decision notifications.
type Notifier interface {
	RegistrationApproved(ctx context.Context, to, name string)
	RegistrationRejected(ctx context.Context, to, name, reason string)
}

type Service struct {
	requests  RequestStore
	residents ResidentStore
	accounts  AccountStore
	matcher   *matcher.Matcher
	guard     *guard.Guard
	tx        StoreTx
	notifier  Notifier
	tracer    tracer.Tracer
	auditor   *audit.Logger
	logger    *slog.Logger
	metrics   *registrationmetrics.Metrics
}

func New(requests RequestStore, residents ResidentStore, accounts AccountStore, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	tx := cfg.tx
	if tx == nil {
		tx = newInMemoryStoreTx()
	}
	tr := cfg.tracer
	if tr == nil {
		tr = tracer.NewNoop()
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		requests:  requests,
		residents: residents,
		accounts:  accounts,
		matcher:   matcher.New(residents),
		guard:     guard.New(residents),
		tx:        tx,
		notifier:  cfg.notifier,
		tracer:    tr,
		auditor:   audit.NewLogger(logger, cfg.auditor),
		logger:    logger,
		metrics:   cfg.metrics,
	}
}
