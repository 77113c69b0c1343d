// Package service implements vehicle sticker issuance: resident requests,
// staff review, direct issuance, revocation and the expiry sweep.
package service

import (
	"context"
	"log/slog"
	"time"

	"gatehouse/internal/platform/tracer"
	residentmodels "gatehouse/internal/resident/models"
	"gatehouse/internal/vehicle/codegen"
	vehiclemetrics "gatehouse/internal/vehicle/metrics"
	"gatehouse/internal/vehicle/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/audit"
)

type VehicleStore interface {
	Create(ctx context.Context, v *models.Vehicle) error
	Update(ctx context.Context, v *models.Vehicle) error
	Delete(ctx context.Context, vehicleID id.VehicleID) error
	FindByID(ctx context.Context, vehicleID id.VehicleID) (*models.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*models.Vehicle, error)
	ListByResident(ctx context.Context, residentID id.ResidentID) ([]*models.Vehicle, error)
}

type StickerStore interface {
	CodeExists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, st *models.Sticker) error
	Delete(ctx context.Context, stickerID id.StickerID) error
	FindByID(ctx context.Context, stickerID id.StickerID) (*models.Sticker, error)
	SaveRevocation(ctx context.Context, st *models.Sticker) error
	ExpireDue(ctx context.Context, now time.Time) (int, error)
	ListByResident(ctx context.Context, residentID id.ResidentID) ([]*models.Sticker, error)
	CountByStatus(ctx context.Context, status models.StickerStatus) (int, error)
}

type RequestStore interface {
	Create(ctx context.Context, req *models.Request) error
	FindByID(ctx context.Context, requestID id.VehicleRequestID) (*models.Request, error)
	FindPendingByPlate(ctx context.Context, plate string) (*models.Request, error)
	SaveDecision(ctx context.Context, req *models.Request) error
	ListByStatus(ctx context.Context, status models.RequestStatus) ([]*models.Request, error)
	CountByStatus(ctx context.Context, status models.RequestStatus) (int, error)
}

type ResidentFinder interface {
	FindByID(ctx context.Context, residentID id.ResidentID) (*residentmodels.Resident, error)
	FindByLinkedAccount(ctx context.Context, accountID id.AccountID) (*residentmodels.Resident, error)
}

// Notifier sends best-effort decision notifications.
type Notifier interface {
	VehicleApproved(ctx context.Context, to, plate, code string, expiresAt time.Time)
	VehicleRejected(ctx context.Context, to, plate, reason string)
}

type Service struct {
	vehicles  VehicleStore
	stickers  StickerStore
	requests  RequestStore
	residents ResidentFinder
	codes     *codegen.Generator
	notifier  Notifier
	tracer    tracer.Tracer
	auditor   *audit.Logger
	logger    *slog.Logger
	metrics   *vehiclemetrics.Metrics
}

func New(vehicles VehicleStore, stickers StickerStore, requests RequestStore, residents ResidentFinder, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
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
		vehicles:  vehicles,
		stickers:  stickers,
		requests:  requests,
		residents: residents,
		codes:     codegen.New(stickers, cfg.codeOptions...),
		notifier:  cfg.notifier,
		tracer:    tr,
		auditor:   audit.NewLogger(logger, cfg.auditor),
		logger:    logger,
		metrics:   cfg.metrics,
	}
}
