// Package guard enforces one linked resident per (phase, block, lot).
package guard

import (
	"context"
	"errors"

	residentmodels "gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/sentinel"
)

// OccupantFinder returns the linked resident at a unit or sentinel.ErrNotFound.
type OccupantFinder interface {
	FindLinkedAtUnit(ctx context.Context, addr residentmodels.Address) (*residentmodels.Resident, error)
}

type Guard struct {
	residents OccupantFinder
}

func New(residents OccupantFinder) *Guard {
	return &Guard{residents: residents}
}

// Check queries the store afresh for a linked occupant at addr. It passes when
// the unit is free or the occupant is the selected resident; selected may be
// nil when a new resident will be created. A blank address skips the check.
func (g *Guard) Check(ctx context.Context, addr residentmodels.Address, selected *id.ResidentID) error {
	if addr.IsEmpty() {
		return nil
	}
	occupant, err := g.residents.FindLinkedAtUnit(ctx, addr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check unit occupancy")
	}
	if selected != nil && occupant.ID == *selected {
		return nil
	}
	o := occupant.AsOccupant()
	return dErrors.WithDetails(dErrors.CodeDuplicateAddress, "unit already has a linked resident", map[string]any{
		"phase":    addr.Phase,
		"block":    addr.Block,
		"lot":      addr.Lot,
		"occupant": o,
	})
}
