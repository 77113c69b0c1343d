package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gatehouse/internal/platform/tracer"
	"gatehouse/internal/vehicle/codegen"
	"gatehouse/internal/vehicle/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/audit"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/requestcontext"
)

// IssueStickerCommand is direct staff issuance outside the request flow.
type IssueStickerCommand struct {
	ResidentID id.ResidentID
	VehicleID  *id.VehicleID
	AmountPaid decimal.Decimal
	ExpiresAt  *time.Time
	IssuedBy   id.AccountID
}

type RevokeStickerCommand struct {
	StickerID id.StickerID
	RevokedBy id.AccountID
	Reason    string
}

// IssueSticker issues a sticker to a resident, optionally bound to one of
// their vehicles.
func (s *Service) IssueSticker(ctx context.Context, cmd IssueStickerCommand) (*models.Sticker, error) {
	if cmd.ResidentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "resident ID required")
	}
	if _, err := s.residents.FindByID(ctx, cmd.ResidentID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "resident not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load resident")
	}
	if cmd.VehicleID != nil {
		vehicle, err := s.vehicles.FindByID(ctx, *cmd.VehicleID)
		if err != nil {
			return nil, wrapVehicleErr(err, "failed to load vehicle")
		}
		if vehicle.ResidentID != cmd.ResidentID {
			return nil, dErrors.New(dErrors.CodeValidation, "vehicle does not belong to resident")
		}
	}

	sticker, err := s.issue(ctx, cmd.ResidentID, cmd.VehicleID, cmd.AmountPaid, cmd.ExpiresAt, requestcontext.Now(ctx), "direct")
	if err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, audit.ActionStickerIssued, sticker.ID.String(),
		"actor_id", cmd.IssuedBy.String(),
		"sticker_code", sticker.Code,
		"resident_id", cmd.ResidentID.String(),
	)
	return sticker, nil
}

// issue generates a code and persists an ACTIVE sticker.
func (s *Service) issue(ctx context.Context, residentID id.ResidentID, vehicleID *id.VehicleID, amount decimal.Decimal, expiresAt *time.Time, now time.Time, path string) (sticker *models.Sticker, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanStickerIssue, tracer.String(tracer.AttrResidentID, residentID.String()))
	defer func() { span.End(err) }()

	code, err := s.codes.Generate(ctx, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate sticker code")
	}
	span.SetAttributes(
		tracer.String(tracer.AttrStickerCode, code.Code),
		tracer.Int64(tracer.AttrCodeAttempts, int64(code.Attempts)),
	)
	if code.Collided {
		span.AddEvent(tracer.EventCodeCollided)
		s.logger.WarnContext(ctx, "sticker code generator exhausted attempts; using last candidate",
			"code", code.Code, "attempts", code.Attempts)
	}

	sticker, err = models.NewSticker(id.StickerID(uuid.New()), code.Code, residentID, vehicleID, amount,
		now, codegen.DefaultExpiry(now, expiresAt))
	if err != nil {
		return nil, err
	}
	if err := s.stickers.Create(ctx, sticker); err != nil {
		return nil, wrapStickerErr(err, "failed to create sticker")
	}
	if s.metrics != nil {
		s.metrics.ObserveIssued(path, code.Attempts, code.Collided)
	}
	return sticker, nil
}

// RevokeSticker moves an ACTIVE sticker to REVOKED.
func (s *Service) RevokeSticker(ctx context.Context, cmd RevokeStickerCommand) (*models.Sticker, error) {
	if cmd.StickerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "sticker ID required")
	}
	sticker, err := s.stickers.FindByID(ctx, cmd.StickerID)
	if err != nil {
		return nil, wrapStickerErr(err, "failed to load sticker")
	}
	if !sticker.IsActive() {
		return nil, dErrors.WithDetails(dErrors.CodeConflict, "sticker is not active", map[string]any{
			"status": string(sticker.Status),
		})
	}
	if err := sticker.Revoke(cmd.Reason, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.stickers.SaveRevocation(ctx, sticker); err != nil {
		return nil, wrapStickerErr(err, "failed to revoke sticker")
	}

	s.auditor.Log(ctx, audit.ActionStickerRevoked, sticker.ID.String(),
		"actor_id", cmd.RevokedBy.String(),
		"reason", cmd.Reason,
	)
	return sticker, nil
}

// ExpireStickers marks every active sticker past its expiry as EXPIRED and
// returns how many changed.
func (s *Service) ExpireStickers(ctx context.Context) (int, error) {
	n, err := s.stickers.ExpireDue(ctx, requestcontext.Now(ctx))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to expire stickers")
	}
	if n > 0 {
		s.auditor.Log(ctx, audit.ActionStickersExpired, "vehicle_stickers", "count", n)
		if s.metrics != nil {
			s.metrics.AddExpired(n)
		}
	}
	return n, nil
}
