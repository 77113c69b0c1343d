package service

import (
	"context"
	"errors"

	residentmodels "gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/sentinel"
)

func wrapPaymentErr(err error, action string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "payment not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return alreadyProcessed()
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, action)
	}
}

func alreadyProcessed() error {
	return dErrors.New(dErrors.CodeAlreadyProcessed, "payment already processed")
}

func (s *Service) residentForAccount(ctx context.Context, accountID id.AccountID) (*residentmodels.Resident, error) {
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "account required")
	}
	res, err := s.residents.FindByLinkedAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeForbidden, "account is not linked to a resident")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load resident")
	}
	return res, nil
}

func (s *Service) residentEmail(ctx context.Context, residentID id.ResidentID) string {
	res, err := s.residents.FindByID(ctx, residentID)
	if err != nil {
		s.logger.WarnContext(ctx, "resident lookup for notification failed",
			"resident_id", residentID.String(), "error", err)
		return ""
	}
	return res.Email
}
