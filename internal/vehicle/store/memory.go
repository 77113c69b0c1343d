package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"gatehouse/internal/vehicle/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
)

// InMemoryVehicles is a thread-safe vehicle store keyed by id with a plate index.
type InMemoryVehicles struct {
	mu       sync.RWMutex
	vehicles map[id.VehicleID]*models.Vehicle
	byPlate  map[string]id.VehicleID
}

func NewInMemoryVehicles() *InMemoryVehicles {
	return &InMemoryVehicles{
		vehicles: make(map[id.VehicleID]*models.Vehicle),
		byPlate:  make(map[string]id.VehicleID),
	}
}

func (s *InMemoryVehicles) Create(_ context.Context, v *models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byPlate[v.PlateNumber]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.vehicles[v.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *v
	s.vehicles[v.ID] = &cp
	s.byPlate[v.PlateNumber] = v.ID
	return nil
}

func (s *InMemoryVehicles) Update(_ context.Context, v *models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[v.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *v
	s.vehicles[v.ID] = &cp
	return nil
}

func (s *InMemoryVehicles) Delete(_ context.Context, vehicleID id.VehicleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[vehicleID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byPlate, v.PlateNumber)
	delete(s.vehicles, vehicleID)
	return nil
}

func (s *InMemoryVehicles) FindByID(_ context.Context, vehicleID id.VehicleID) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vehicles[vehicleID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *InMemoryVehicles) FindByPlate(_ context.Context, plate string) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vid, ok := s.byPlate[models.NormalizePlate(plate)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.vehicles[vid]
	return &cp, nil
}

func (s *InMemoryVehicles) ListByResident(_ context.Context, residentID id.ResidentID) ([]*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Vehicle, 0)
	for _, v := range s.vehicles {
		if v.ResidentID == residentID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlateNumber < out[j].PlateNumber })
	return out, nil
}

// InMemoryStickers is a thread-safe sticker store with a unique code index.
type InMemoryStickers struct {
	mu       sync.RWMutex
	stickers map[id.StickerID]*models.Sticker
	byCode   map[string]id.StickerID
}

func NewInMemoryStickers() *InMemoryStickers {
	return &InMemoryStickers{
		stickers: make(map[id.StickerID]*models.Sticker),
		byCode:   make(map[string]id.StickerID),
	}
}

func cloneSticker(st *models.Sticker) *models.Sticker {
	cp := *st
	if st.VehicleID != nil {
		v := *st.VehicleID
		cp.VehicleID = &v
	}
	if st.RevokedAt != nil {
		v := *st.RevokedAt
		cp.RevokedAt = &v
	}
	return &cp
}

func (s *InMemoryStickers) CodeExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byCode[code]
	return ok, nil
}

func (s *InMemoryStickers) Create(_ context.Context, st *models.Sticker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byCode[st.Code]; ok {
		return sentinel.ErrConflict
	}
	s.stickers[st.ID] = cloneSticker(st)
	s.byCode[st.Code] = st.ID
	return nil
}

func (s *InMemoryStickers) Delete(_ context.Context, stickerID id.StickerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stickers[stickerID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byCode, st.Code)
	delete(s.stickers, stickerID)
	return nil
}

func (s *InMemoryStickers) FindByID(_ context.Context, stickerID id.StickerID) (*models.Sticker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stickers[stickerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneSticker(st), nil
}

// SaveRevocation persists a revoked sticker only while it is still active.
func (s *InMemoryStickers) SaveRevocation(_ context.Context, st *models.Sticker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.stickers[st.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !current.IsActive() {
		return sentinel.ErrInvalidState
	}
	s.stickers[st.ID] = cloneSticker(st)
	return nil
}

// ExpireDue marks every active sticker whose expiry is at or before now.
func (s *InMemoryStickers) ExpireDue(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, st := range s.stickers {
		if st.ExpiredAt(now) {
			st.Status = models.StickerExpired
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStickers) ListByResident(_ context.Context, residentID id.ResidentID) ([]*models.Sticker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Sticker, 0)
	for _, st := range s.stickers {
		if st.ResidentID == residentID {
			out = append(out, cloneSticker(st))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out, nil
}

func (s *InMemoryStickers) CountByStatus(_ context.Context, status models.StickerStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, st := range s.stickers {
		if st.Status == status {
			n++
		}
	}
	return n, nil
}

// InMemoryRequests is a thread-safe vehicle request store.
type InMemoryRequests struct {
	mu       sync.RWMutex
	requests map[id.VehicleRequestID]*models.Request
}

func NewInMemoryRequests() *InMemoryRequests {
	return &InMemoryRequests{requests: make(map[id.VehicleRequestID]*models.Request)}
}

func cloneRequest(r *models.Request) *models.Request {
	cp := *r
	if r.ReviewedBy != nil {
		v := *r.ReviewedBy
		cp.ReviewedBy = &v
	}
	if r.ReviewedAt != nil {
		v := *r.ReviewedAt
		cp.ReviewedAt = &v
	}
	if r.StickerID != nil {
		v := *r.StickerID
		cp.StickerID = &v
	}
	return &cp
}

func (s *InMemoryRequests) Create(_ context.Context, req *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[req.ID]; ok {
		return sentinel.ErrConflict
	}
	s.requests[req.ID] = cloneRequest(req)
	return nil
}

func (s *InMemoryRequests) FindByID(_ context.Context, requestID id.VehicleRequestID) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[requestID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRequest(req), nil
}

// FindPendingByPlate returns the open request for a plate, if any.
func (s *InMemoryRequests) FindPendingByPlate(_ context.Context, plate string) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plate = models.NormalizePlate(plate)
	for _, req := range s.requests {
		if req.IsPending() && req.PlateNumber == plate {
			return cloneRequest(req), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// SaveDecision writes the review outcome only while the request is pending.
func (s *InMemoryRequests) SaveDecision(_ context.Context, req *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.requests[req.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !current.IsPending() {
		return sentinel.ErrAlreadyUsed
	}
	s.requests[req.ID] = cloneRequest(req)
	return nil
}

func (s *InMemoryRequests) ListByStatus(_ context.Context, status models.RequestStatus) ([]*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Request, 0)
	for _, req := range s.requests {
		if req.Status == status {
			out = append(out, cloneRequest(req))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryRequests) CountByStatus(_ context.Context, status models.RequestStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, req := range s.requests {
		if req.Status == status {
			n++
		}
	}
	return n, nil
}
