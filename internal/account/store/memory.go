package store

import (
	"context"
	"sync"

	"gatehouse/internal/account/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	txcontext "gatehouse/pkg/platform/tx"
)

// InMemory is a thread-safe in-memory account store for dev mode and tests.
type InMemory struct {
	mu       sync.RWMutex
	accounts map[id.AccountID]*models.Account
}

func NewInMemory() *InMemory {
	return &InMemory{accounts: make(map[id.AccountID]*models.Account)}
}

// Ensure inserts the account when it is not yet mirrored and returns the stored copy.
func (s *InMemory) Ensure(ctx context.Context, account *models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.accounts[account.ID]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *account
	s.accounts[account.ID] = &cp
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.accounts, account.ID)
	})
	out := cp
	return &out, nil
}

func (s *InMemory) FindByID(_ context.Context, accountID id.AccountID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *InMemory) UpdateRole(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[account.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	prevRole, prevUpdated := a.Role, a.UpdatedAt
	a.Role = account.Role
	a.UpdatedAt = account.UpdatedAt
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		a.Role = prevRole
		a.UpdatedAt = prevUpdated
	})
	return nil
}
