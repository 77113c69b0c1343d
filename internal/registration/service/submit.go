package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	accountmodels "gatehouse/internal/account/models"
	"gatehouse/internal/platform/tracer"
	"gatehouse/internal/registration/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/audit"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/requestcontext"
)

// SubmitCommand is a signed-in account claiming a unit.
type SubmitCommand struct {
	AccountID    id.AccountID
	AccountEmail string
	AccountRole  accountmodels.Role
	Claim        models.Claim
}

func (c *SubmitCommand) validate() error {
	if c.AccountID.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "account required")
	}
	if strings.TrimSpace(c.Claim.Email) == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(c.Claim.FirstName) == "" || strings.TrimSpace(c.Claim.LastName) == "" {
		return dErrors.New(dErrors.CodeValidation, "first and last name are required")
	}
	return nil
}

// Submit classifies the claim. A high-confidence match links the account
// immediately and stores no request. Anything else, including a failed link,
// becomes a pending request for staff review.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (result *models.SubmitResult, err error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanRegistrationSubmit, tracer.String(tracer.AttrAccountID, cmd.AccountID.String()))
	defer func() { span.End(err) }()

	email := cmd.AccountEmail
	if email == "" {
		email = cmd.Claim.Email
	}
	role := cmd.AccountRole
	if !role.IsValid() {
		role = accountmodels.RoleUser
	}
	mirror, err := accountmodels.NewAccount(cmd.AccountID, email, role, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if _, err := s.accounts.Ensure(ctx, mirror); err != nil {
		return nil, wrapAccountErr(err, "failed to record account")
	}

	if err := s.requireUnclaimed(ctx, cmd.AccountID); err != nil {
		return nil, err
	}

	match, err := s.matcher.Match(ctx, cmd.Claim)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to match registration")
	}
	span.SetAttributes(tracer.String(tracer.AttrConfidence, string(match.Confidence)))

	if match.Confidence == models.ConfidenceHigh {
		linkErr := s.autoLink(ctx, cmd.AccountID, match)
		if linkErr == nil {
			s.auditor.Log(ctx, audit.ActionRegistrationAutoLinked, match.Resident.ID.String(),
				"actor_id", cmd.AccountID.String(),
				"resident_id", match.Resident.ID.String(),
			)
			s.incrementSubmission(match.Confidence, models.ActionLinked)
			return &models.SubmitResult{
				Status:     models.StatusApproved,
				Action:     models.ActionLinked,
				Confidence: match.Confidence,
				ResidentID: match.Resident.ID.String(),
			}, nil
		}
		span.AddEvent(tracer.EventAutoLinkFailed)
		s.logger.WarnContext(ctx, "auto-link failed; falling back to manual review",
			"account_id", cmd.AccountID.String(),
			"resident_id", match.Resident.ID.String(),
			"error", linkErr,
		)
		if s.metrics != nil {
			s.metrics.IncrementAutoLinkFailed()
		}
	}

	req, err := models.NewPendingRequest(id.RegistrationID(uuid.New()), cmd.AccountID, cmd.Claim, match, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, wrapRequestErr(err, "failed to create registration request")
	}

	s.auditor.Log(ctx, audit.ActionRegistrationSubmitted, req.ID.String(),
		"actor_id", cmd.AccountID.String(),
		"confidence", string(match.Confidence),
	)
	s.incrementSubmission(match.Confidence, models.ActionPending)
	return &models.SubmitResult{
		Status:     models.StatusPending,
		Action:     models.ActionPending,
		Confidence: match.Confidence,
		Request:    req,
	}, nil
}

// requireUnclaimed rejects accounts that are already linked or already have a
// request waiting for review.
func (s *Service) requireUnclaimed(ctx context.Context, accountID id.AccountID) error {
	if _, err := s.residents.FindByLinkedAccount(ctx, accountID); err == nil {
		return dErrors.New(dErrors.CodeAlreadyLinked, "account is already linked to a resident")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check account link")
	}

	latest, err := s.requests.FindLatestForAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return wrapRequestErr(err, "failed to check pending registration")
	}
	if latest.IsPending() {
		return dErrors.WithDetails(dErrors.CodeConflict, "registration already pending review",
			map[string]any{"registration_id": latest.ID.String()})
	}
	return nil
}

// autoLink links the matched resident and promotes the account in one
// transaction. The unit guard runs first so an auto-link never gives a unit a
// second linked resident.
func (s *Service) autoLink(ctx context.Context, accountID id.AccountID, match models.Match) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		selected := match.Resident.ID
		if err := s.guard.Check(txCtx, match.Resident.Address, &selected); err != nil {
			return err
		}
		if err := s.residents.LinkAccount(txCtx, match.Resident.ID, accountID, requestcontext.Now(txCtx)); err != nil {
			return wrapLinkErr(err)
		}
		return s.promote(txCtx, accountID, "")
	})
}

// promote raises the account to RESIDENT. Staff and admin roles are kept.
func (s *Service) promote(ctx context.Context, accountID id.AccountID, email string) error {
	account, err := s.accounts.FindByID(ctx, accountID)
	if errors.Is(err, sentinel.ErrNotFound) && email != "" {
		mirror, mErr := accountmodels.NewAccount(accountID, email, accountmodels.RoleUser, requestcontext.Now(ctx))
		if mErr != nil {
			return mErr
		}
		account, err = s.accounts.Ensure(ctx, mirror)
	}
	if err != nil {
		return wrapAccountErr(err, "failed to load account")
	}
	if !account.PromoteToResident(requestcontext.Now(ctx)) {
		return nil
	}
	if err := s.accounts.UpdateRole(ctx, account); err != nil {
		return wrapAccountErr(err, "failed to promote account")
	}
	return nil
}

func (s *Service) incrementSubmission(confidence models.Confidence, action models.Action) {
	if s.metrics != nil {
		s.metrics.IncrementSubmission(string(confidence), string(action))
	}
}
