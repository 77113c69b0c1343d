package store

import (
	"context"
	"sort"
	"sync"

	"gatehouse/internal/registration/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	txcontext "gatehouse/pkg/platform/tx"
)

// InMemory is a thread-safe in-memory registration request store.
type InMemory struct {
	mu       sync.RWMutex
	requests map[id.RegistrationID]*models.Request
}

func NewInMemory() *InMemory {
	return &InMemory{requests: make(map[id.RegistrationID]*models.Request)}
}

func clone(r *models.Request) *models.Request {
	cp := *r
	cp.DocumentURLs = append([]string(nil), r.DocumentURLs...)
	if r.MatchedResidentID != nil {
		v := *r.MatchedResidentID
		cp.MatchedResidentID = &v
	}
	if r.ResidentID != nil {
		v := *r.ResidentID
		cp.ResidentID = &v
	}
	if r.ReviewedBy != nil {
		v := *r.ReviewedBy
		cp.ReviewedBy = &v
	}
	if r.ReviewedAt != nil {
		v := *r.ReviewedAt
		cp.ReviewedAt = &v
	}
	return &cp
}

func (s *InMemory) Create(ctx context.Context, req *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[req.ID]; ok {
		return sentinel.ErrConflict
	}
	reqID := req.ID
	s.requests[reqID] = clone(req)
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.requests, reqID)
	})
	return nil
}

func (s *InMemory) FindByID(_ context.Context, requestID id.RegistrationID) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[requestID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(r), nil
}

// SaveDecision persists a reviewed request only if the stored copy is still
// pending. A request that was already decided yields sentinel.ErrAlreadyUsed.
func (s *InMemory) SaveDecision(ctx context.Context, req *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.requests[req.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !current.IsPending() {
		return sentinel.ErrAlreadyUsed
	}
	reqID := req.ID
	s.requests[reqID] = clone(req)
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.requests[reqID] = current
	})
	return nil
}

// ListByStatus returns requests oldest first.
func (s *InMemory) ListByStatus(_ context.Context, status models.Status) ([]*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Request, 0)
	for _, r := range s.requests {
		if r.Status == status {
			out = append(out, clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// FindLatestForAccount returns the account's most recent request.
func (s *InMemory) FindLatestForAccount(_ context.Context, accountID id.AccountID) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Request
	for _, r := range s.requests {
		if r.AccountID != accountID {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	return clone(latest), nil
}

func (s *InMemory) CountByStatus(_ context.Context, status models.Status) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.requests {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}
