package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gatehouse/internal/platform/tracer"
	"gatehouse/internal/vehicle/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/audit"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/requestcontext"
)

// SubmitRequestCommand is a linked resident applying for a sticker.
type SubmitRequestCommand struct {
	AccountID   id.AccountID
	PlateNumber string
	Details     models.Details
	AmountPaid  decimal.Decimal
}

// ApproveRequestCommand is a staff approval. ExpiresAt overrides the default
// February 1 expiry.
type ApproveRequestCommand struct {
	RequestID  id.VehicleRequestID
	ReviewerID id.AccountID
	ExpiresAt  *time.Time
}

type RejectRequestCommand struct {
	RequestID  id.VehicleRequestID
	ReviewerID id.AccountID
	Reason     string
}

// SubmitRequest records a pending sticker request for the caller's resident.
// Only one pending request may exist per plate.
func (s *Service) SubmitRequest(ctx context.Context, cmd SubmitRequestCommand) (*models.Request, error) {
	resident, err := s.residentForAccount(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}

	plate := models.NormalizePlate(cmd.PlateNumber)
	pending, err := s.requests.FindPendingByPlate(ctx, plate)
	switch {
	case err == nil:
		return nil, dErrors.Conflict("a request for this plate is already pending", map[string]any{
			"request_id": pending.ID.String(),
		})
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check pending requests")
	}

	req, err := models.NewRequest(id.VehicleRequestID(uuid.New()), resident.ID, plate, cmd.Details, cmd.AmountPaid, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, wrapRequestErr(err, "failed to create vehicle request")
	}

	s.auditor.Log(ctx, audit.ActionVehicleRequested, req.ID.String(),
		"actor_id", cmd.AccountID.String(),
		"plate_number", req.PlateNumber,
	)
	if s.metrics != nil {
		s.metrics.IncrementRequest()
	}
	return req, nil
}

// ApproveRequest upserts the vehicle by plate, issues a sticker and marks the
// request approved. These are separate writes: when a later step fails the
// earlier ones are undone by compensating deletes.
func (s *Service) ApproveRequest(ctx context.Context, cmd ApproveRequestCommand) (approval *models.Approval, err error) {
	if cmd.RequestID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "vehicle request ID required")
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanVehicleApprove,
		tracer.String(tracer.AttrVehicleReq, cmd.RequestID.String()),
		tracer.String(tracer.AttrAccountID, cmd.ReviewerID.String()),
	)
	defer func() { span.End(err) }()

	req, err := s.requests.FindByID(ctx, cmd.RequestID)
	if err != nil {
		return nil, wrapRequestErr(err, "failed to load vehicle request")
	}
	if !req.IsPending() {
		return nil, alreadyProcessed()
	}
	now := requestcontext.Now(ctx)

	vehicle, created, err := s.resolveVehicle(ctx, req, now)
	if err != nil {
		return nil, err
	}

	sticker, err := s.issue(ctx, req.ResidentID, &vehicle.ID, req.AmountPaid, cmd.ExpiresAt, now, "request")
	if err != nil {
		if created {
			s.compensate(ctx, span, nil, &vehicle.ID)
		}
		return nil, err
	}
	span.SetAttributes(tracer.String(tracer.AttrStickerCode, sticker.Code))

	if !created {
		vehicle.Refresh(req.ResidentID, req.Details, now)
		if err := s.vehicles.Update(ctx, vehicle); err != nil {
			s.compensate(ctx, span, &sticker.ID, nil)
			return nil, wrapVehicleErr(err, "failed to update vehicle")
		}
	}

	if err := req.Approve(cmd.ReviewerID, sticker.ID, now); err != nil {
		return nil, err
	}
	if err := s.requests.SaveDecision(ctx, req); err != nil {
		var vehicleID *id.VehicleID
		if created {
			vehicleID = &vehicle.ID
		}
		s.compensate(ctx, span, &sticker.ID, vehicleID)
		return nil, wrapRequestErr(err, "failed to save vehicle request decision")
	}

	s.auditor.Log(ctx, audit.ActionVehicleApproved, req.ID.String(),
		"actor_id", cmd.ReviewerID.String(),
		"sticker_code", sticker.Code,
		"plate_number", vehicle.PlateNumber,
	)
	if s.metrics != nil {
		s.metrics.IncrementDecision(string(models.RequestApproved))
	}
	if s.notifier != nil {
		if to := s.residentEmail(ctx, req.ResidentID); to != "" {
			s.notifier.VehicleApproved(ctx, to, vehicle.PlateNumber, sticker.Code, sticker.ExpiresAt)
		}
	}

	return &models.Approval{Request: req, Vehicle: vehicle, Sticker: sticker, VehicleCreated: created}, nil
}

// resolveVehicle returns the vehicle registered under the request's plate,
// creating it when absent. created reports whether this call inserted it.
func (s *Service) resolveVehicle(ctx context.Context, req *models.Request, now time.Time) (*models.Vehicle, bool, error) {
	existing, err := s.vehicles.FindByPlate(ctx, req.PlateNumber)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, wrapVehicleErr(err, "failed to look up vehicle")
	}

	vehicle, err := models.NewVehicle(id.VehicleID(uuid.New()), req.ResidentID, req.PlateNumber, req.Details, now)
	if err != nil {
		return nil, false, err
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, false, wrapVehicleErr(err, "failed to create vehicle")
	}
	return vehicle, true, nil
}

// compensate undoes writes from a failed approval. Failures are logged; the
// original error is what the caller sees.
func (s *Service) compensate(ctx context.Context, span tracer.Span, stickerID *id.StickerID, vehicleID *id.VehicleID) {
	span.AddEvent(tracer.EventCompensated)
	if stickerID != nil {
		if err := s.stickers.Delete(ctx, *stickerID); err != nil {
			s.logger.ErrorContext(ctx, "compensating sticker delete failed",
				"sticker_id", stickerID.String(), "error", err)
		}
	}
	if vehicleID != nil {
		if err := s.vehicles.Delete(ctx, *vehicleID); err != nil {
			s.logger.ErrorContext(ctx, "compensating vehicle delete failed",
				"vehicle_id", vehicleID.String(), "error", err)
		}
		if s.metrics != nil {
			s.metrics.IncrementCompensation()
		}
	}
}

// RejectRequest closes a pending request without issuing anything.
func (s *Service) RejectRequest(ctx context.Context, cmd RejectRequestCommand) (*models.Request, error) {
	if cmd.RequestID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "vehicle request ID required")
	}
	req, err := s.requests.FindByID(ctx, cmd.RequestID)
	if err != nil {
		return nil, wrapRequestErr(err, "failed to load vehicle request")
	}
	if !req.IsPending() {
		return nil, alreadyProcessed()
	}
	if err := req.Reject(cmd.ReviewerID, cmd.Reason, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.requests.SaveDecision(ctx, req); err != nil {
		return nil, wrapRequestErr(err, "failed to save vehicle request decision")
	}

	s.auditor.Log(ctx, audit.ActionVehicleRejected, req.ID.String(),
		"actor_id", cmd.ReviewerID.String(),
		"reason", cmd.Reason,
	)
	if s.metrics != nil {
		s.metrics.IncrementDecision(string(models.RequestRejected))
	}
	if s.notifier != nil {
		if to := s.residentEmail(ctx, req.ResidentID); to != "" {
			s.notifier.VehicleRejected(ctx, to, req.PlateNumber, cmd.Reason)
		}
	}
	return req, nil
}
