package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gatehouse/internal/platform/tracer"
	"gatehouse/internal/registration/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/audit"
	"gatehouse/pkg/requestcontext"
)

// ApproveCommand is a staff decision to approve a pending request.
// ResidentID selects an existing resident to link; nil creates a new one from
// the claim.
type ApproveCommand struct {
	RequestID  id.RegistrationID
	ResidentID *id.ResidentID
	ReviewerID id.AccountID
}

// RejectCommand is a staff decision to reject a pending request.
type RejectCommand struct {
	RequestID  id.RegistrationID
	ReviewerID id.AccountID
	Reason     string
}

// Approve links or creates the resident, promotes the account and marks the
// request approved in one transaction. The notification is sent afterwards
// and never fails the call.
func (s *Service) Approve(ctx context.Context, cmd ApproveCommand) (decision *models.Decision, err error) {
	if cmd.RequestID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "registration ID required")
	}
	if cmd.ResidentID != nil && cmd.ResidentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid resident ID")
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanRegistrationApprove, tracer.String(tracer.AttrRequestID, cmd.RequestID.String()))
	defer func() { span.End(err) }()
	start := time.Now()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.requests.FindByID(txCtx, cmd.RequestID)
		if err != nil {
			return wrapRequestErr(err, "failed to load registration request")
		}
		if !req.IsPending() {
			return alreadyProcessed()
		}

		if err := s.guard.Check(txCtx, req.Address, cmd.ResidentID); err != nil {
			return err
		}
		// a selected resident brings its own unit, which must be free as well
		if cmd.ResidentID != nil {
			selected, err := s.residents.FindByID(txCtx, *cmd.ResidentID)
			if err != nil {
				return wrapLinkErr(err)
			}
			if !selected.Address.SameUnit(req.Address) {
				if err := s.guard.Check(txCtx, selected.Address, cmd.ResidentID); err != nil {
					return err
				}
			}
		}
		span.AddEvent(tracer.EventGuardPassed)

		now := requestcontext.Now(txCtx)
		var residentID id.ResidentID
		created := false
		if cmd.ResidentID != nil {
			residentID = *cmd.ResidentID
			if err := s.residents.LinkAccount(txCtx, residentID, req.AccountID, now); err != nil {
				return wrapLinkErr(err)
			}
		} else {
			resident, err := req.ResidentFromClaim(id.ResidentID(uuid.New()), now)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeValidation, "registration claim cannot form a resident")
			}
			accountID := req.AccountID
			resident.LinkedAccountID = &accountID
			if err := s.residents.Create(txCtx, resident); err != nil {
				return wrapLinkErr(err)
			}
			residentID = resident.ID
			created = true
		}

		if err := s.promote(txCtx, req.AccountID, req.Email); err != nil {
			return err
		}

		if err := req.Approve(cmd.ReviewerID, residentID, now); err != nil {
			return alreadyProcessed()
		}
		if err := s.requests.SaveDecision(txCtx, req); err != nil {
			return wrapRequestErr(err, "failed to save registration decision")
		}

		s.auditor.Log(txCtx, audit.ActionRegistrationApproved, req.ID.String(),
			"actor_id", cmd.ReviewerID.String(),
			"resident_id", residentID.String(),
			"created_resident", created,
		)
		decision = &models.Decision{Request: req, ResidentID: residentID.String(), Created: created}
		return nil
	})
	if s.metrics != nil {
		s.metrics.ObserveApprove(start)
	}
	if err != nil {
		return nil, err
	}

	span.SetAttributes(tracer.String(tracer.AttrResidentID, decision.ResidentID))
	s.incrementDecision(models.StatusApproved)
	if s.notifier != nil {
		s.notifier.RegistrationApproved(ctx, decision.Request.Email, decision.Request.FirstName)
	}
	return decision, nil
}

// Reject marks a pending request rejected. Residents are never touched.
func (s *Service) Reject(ctx context.Context, cmd RejectCommand) (decision *models.Decision, err error) {
	if cmd.RequestID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "registration ID required")
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanRegistrationReject, tracer.String(tracer.AttrRequestID, cmd.RequestID.String()))
	defer func() { span.End(err) }()

	reason := strings.TrimSpace(cmd.Reason)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.requests.FindByID(txCtx, cmd.RequestID)
		if err != nil {
			return wrapRequestErr(err, "failed to load registration request")
		}
		if err := req.Reject(cmd.ReviewerID, reason, requestcontext.Now(txCtx)); err != nil {
			return alreadyProcessed()
		}
		if err := s.requests.SaveDecision(txCtx, req); err != nil {
			return wrapRequestErr(err, "failed to save registration decision")
		}
		s.auditor.Log(txCtx, audit.ActionRegistrationRejected, req.ID.String(),
			"actor_id", cmd.ReviewerID.String(),
			"reason", reason,
		)
		decision = &models.Decision{Request: req}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.incrementDecision(models.StatusRejected)
	if s.notifier != nil {
		s.notifier.RegistrationRejected(ctx, decision.Request.Email, decision.Request.FirstName, reason)
	}
	return decision, nil
}

func (s *Service) incrementDecision(status models.Status) {
	if s.metrics != nil {
		s.metrics.IncrementDecision(string(status))
	}
}
