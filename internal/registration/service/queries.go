package service

import (
	"context"

	"gatehouse/internal/registration/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// List returns requests in the given status, oldest first.
func (s *Service) List(ctx context.Context, status models.Status) ([]*models.Request, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid registration status")
	}
	reqs, err := s.requests.ListByStatus(ctx, status)
	if err != nil {
		return nil, wrapRequestErr(err, "failed to list registration requests")
	}
	return reqs, nil
}

func (s *Service) Get(ctx context.Context, requestID id.RegistrationID) (*models.Request, error) {
	if requestID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "registration ID required")
	}
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, wrapRequestErr(err, "failed to load registration request")
	}
	return req, nil
}

// GetForAccount returns the caller's most recent request.
func (s *Service) GetForAccount(ctx context.Context, accountID id.AccountID) (*models.Request, error) {
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "account required")
	}
	req, err := s.requests.FindLatestForAccount(ctx, accountID)
	if err != nil {
		return nil, wrapRequestErr(err, "failed to load registration request")
	}
	return req, nil
}

// CountPending feeds the staff dashboard.
func (s *Service) CountPending(ctx context.Context) (int, error) {
	n, err := s.requests.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count pending registrations")
	}
	return n, nil
}
