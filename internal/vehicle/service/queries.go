package service

import (
	"context"

	"gatehouse/internal/vehicle/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// ListRequests returns requests in the given status, oldest first.
func (s *Service) ListRequests(ctx context.Context, status models.RequestStatus) ([]*models.Request, error) {
	reqs, err := s.requests.ListByStatus(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list vehicle requests")
	}
	return reqs, nil
}

// CountPending feeds the staff dashboard.
func (s *Service) CountPending(ctx context.Context) (int, error) {
	n, err := s.requests.CountByStatus(ctx, models.RequestPending)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count pending vehicle requests")
	}
	return n, nil
}

// CountActiveStickers feeds the staff dashboard.
func (s *Service) CountActiveStickers(ctx context.Context) (int, error) {
	n, err := s.stickers.CountByStatus(ctx, models.StickerActive)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count active stickers")
	}
	return n, nil
}

// Garage is a resident's vehicles and stickers.
type Garage struct {
	Vehicles []*models.Vehicle
	Stickers []*models.Sticker
}

// GarageForAccount returns the vehicles and stickers of the caller's resident.
func (s *Service) GarageForAccount(ctx context.Context, accountID id.AccountID) (*Garage, error) {
	resident, err := s.residentForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicles.ListByResident(ctx, resident.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list vehicles")
	}
	stickers, err := s.stickers.ListByResident(ctx, resident.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list stickers")
	}
	return &Garage{Vehicles: vehicles, Stickers: stickers}, nil
}
