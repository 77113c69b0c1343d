package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	txcontext "gatehouse/pkg/platform/tx"
)

// InMemory is a thread-safe in-memory resident store for dev mode and tests.
type InMemory struct {
	mu        sync.RWMutex
	residents map[id.ResidentID]*models.Resident
}

func NewInMemory() *InMemory {
	return &InMemory{residents: make(map[id.ResidentID]*models.Resident)}
}

func clone(r *models.Resident) *models.Resident {
	cp := *r
	if r.LinkedAccountID != nil {
		acct := *r.LinkedAccountID
		cp.LinkedAccountID = &acct
	}
	return &cp
}

func (s *InMemory) Create(ctx context.Context, r *models.Resident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.residents[r.ID]; ok {
		return sentinel.ErrConflict
	}
	if r.IsLinked() {
		for _, other := range s.residents {
			if other.IsLinked() && *other.LinkedAccountID == *r.LinkedAccountID {
				return sentinel.ErrConflict
			}
		}
	}
	residentID := r.ID
	s.residents[residentID] = clone(r)
	txcontext.OnRollback(ctx, func() { s.remove(residentID) })
	return nil
}

func (s *InMemory) FindByID(_ context.Context, residentID id.ResidentID) (*models.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.residents[residentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(r), nil
}

// FindByEmail matches email exactly, including case.
func (s *InMemory) FindByEmail(_ context.Context, email string) ([]*models.Resident, error) {
	return s.filter(func(r *models.Resident) bool { return r.Email == email }), nil
}

// FindByUnit returns residents at the (phase, block, lot) tuple, compared case-insensitively.
func (s *InMemory) FindByUnit(_ context.Context, addr models.Address) ([]*models.Resident, error) {
	return s.filter(func(r *models.Resident) bool { return r.Address.SameUnit(addr) }), nil
}

// FindLinkedAtUnit returns the resident at the unit that already has a linked account.
func (s *InMemory) FindLinkedAtUnit(_ context.Context, addr models.Address) (*models.Resident, error) {
	matches := s.filter(func(r *models.Resident) bool { return r.IsLinked() && r.Address.SameUnit(addr) })
	if len(matches) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return matches[0], nil
}

func (s *InMemory) FindByLinkedAccount(_ context.Context, accountID id.AccountID) (*models.Resident, error) {
	matches := s.filter(func(r *models.Resident) bool { return r.IsLinked() && *r.LinkedAccountID == accountID })
	if len(matches) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return matches[0], nil
}

// LinkAccount sets the linked account only while it is still unset.
// A resident that is already linked yields sentinel.ErrAlreadyUsed.
func (s *InMemory) LinkAccount(ctx context.Context, residentID id.ResidentID, accountID id.AccountID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.residents[residentID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if r.IsLinked() {
		return sentinel.ErrAlreadyUsed
	}
	for _, other := range s.residents {
		if other.IsLinked() && *other.LinkedAccountID == accountID {
			return sentinel.ErrConflict
		}
	}
	prevUpdated := r.UpdatedAt
	acct := accountID
	r.LinkedAccountID = &acct
	r.UpdatedAt = now
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if cur, ok := s.residents[residentID]; ok {
			cur.LinkedAccountID = nil
			cur.UpdatedAt = prevUpdated
		}
	})
	return nil
}

func (s *InMemory) remove(residentID id.ResidentID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.residents, residentID)
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.residents), nil
}

// filter returns clones ordered by creation time so callers see a stable
// "first match".
func (s *InMemory) filter(keep func(*models.Resident) bool) []*models.Resident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Resident
	for _, r := range s.residents {
		if keep(r) {
			out = append(out, clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
