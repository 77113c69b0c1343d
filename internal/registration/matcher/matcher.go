// Package matcher classifies a signup claim against existing resident records.
package matcher

import (
	"context"
	"fmt"
	"strings"

	"gatehouse/internal/registration/models"
	residentmodels "gatehouse/internal/resident/models"
)

// ResidentFinder is the read side of the resident store used for matching.
type ResidentFinder interface {
	FindByEmail(ctx context.Context, email string) ([]*residentmodels.Resident, error)
	FindByUnit(ctx context.Context, addr residentmodels.Address) ([]*residentmodels.Resident, error)
}

type Matcher struct {
	residents ResidentFinder
}

func New(residents ResidentFinder) *Matcher {
	return &Matcher{residents: residents}
}

// Match looks up candidates and classifies them. It never writes.
func (m *Matcher) Match(ctx context.Context, claim models.Claim) (models.Match, error) {
	var byEmail []*residentmodels.Resident
	if claim.Email != "" {
		found, err := m.residents.FindByEmail(ctx, claim.Email)
		if err != nil {
			return models.Match{}, fmt.Errorf("match by email: %w", err)
		}
		byEmail = found
	}

	var byUnit []*residentmodels.Resident
	if len(byEmail) == 0 && !claim.Address.IsEmpty() {
		found, err := m.residents.FindByUnit(ctx, claim.Address)
		if err != nil {
			return models.Match{}, fmt.Errorf("match by unit: %w", err)
		}
		byUnit = found
	}

	return Classify(claim, byEmail, byUnit), nil
}

// Classify grades the candidates:
//   - an exact email match wins over any address match
//   - otherwise the first resident at the unit with the same last name
//   - a matched resident that already has an account is low, otherwise high
//
// First names are not considered; a differing first name is still high.
func Classify(claim models.Claim, byEmail, byUnit []*residentmodels.Resident) models.Match {
	var hit *residentmodels.Resident
	for _, r := range byEmail {
		if r.Email == claim.Email {
			hit = r
			break
		}
	}
	if hit == nil {
		lastName := strings.TrimSpace(claim.LastName)
		for _, r := range byUnit {
			if lastName != "" && r.Address.SameUnit(claim.Address) && strings.EqualFold(strings.TrimSpace(r.LastName), lastName) {
				hit = r
				break
			}
		}
	}

	switch {
	case hit == nil:
		return models.Match{Confidence: models.ConfidenceNone}
	case hit.IsLinked():
		return models.Match{Confidence: models.ConfidenceLow, Resident: hit}
	default:
		return models.Match{Confidence: models.ConfidenceHigh, Resident: hit}
	}
}
