package store

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"gatehouse/internal/dues/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	txcontext "gatehouse/pkg/platform/tx"
)

// InMemoryConfigs holds dues configurations keyed by year.
type InMemoryConfigs struct {
	mu      sync.RWMutex
	configs map[int]models.Config
}

func NewInMemoryConfigs() *InMemoryConfigs {
	return &InMemoryConfigs{configs: make(map[int]models.Config)}
}

func (s *InMemoryConfigs) Upsert(ctx context.Context, cfg *models.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	year := cfg.Year
	prev, existed := s.configs[year]
	s.configs[year] = *cfg
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if existed {
			s.configs[year] = prev
		} else {
			delete(s.configs, year)
		}
	})
	return nil
}

func (s *InMemoryConfigs) FindByYear(_ context.Context, year int) (*models.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[year]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &cfg, nil
}

func (s *InMemoryConfigs) List(_ context.Context) ([]*models.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Config, 0, len(s.configs))
	for _, cfg := range s.configs {
		cp := cfg
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

// InMemoryPayments is a thread-safe payment store.
type InMemoryPayments struct {
	mu       sync.RWMutex
	payments map[id.PaymentID]*models.Payment
}

func NewInMemoryPayments() *InMemoryPayments {
	return &InMemoryPayments{payments: make(map[id.PaymentID]*models.Payment)}
}

func clonePayment(p *models.Payment) *models.Payment {
	cp := *p
	if p.VerifiedBy != nil {
		v := *p.VerifiedBy
		cp.VerifiedBy = &v
	}
	if p.VerifiedAt != nil {
		v := *p.VerifiedAt
		cp.VerifiedAt = &v
	}
	return &cp
}

func (s *InMemoryPayments) Create(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.ID]; ok {
		return sentinel.ErrConflict
	}
	paymentID := p.ID
	s.payments[paymentID] = clonePayment(p)
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.payments, paymentID)
	})
	return nil
}

func (s *InMemoryPayments) FindByID(_ context.Context, paymentID id.PaymentID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[paymentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clonePayment(p), nil
}

// SaveDecision writes the verification outcome only while the payment is pending.
func (s *InMemoryPayments) SaveDecision(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.payments[p.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !current.IsPending() {
		return sentinel.ErrAlreadyUsed
	}
	paymentID := p.ID
	s.payments[paymentID] = clonePayment(p)
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.payments[paymentID] = current
	})
	return nil
}

func (s *InMemoryPayments) ListByStatus(_ context.Context, status models.PaymentStatus) ([]*models.Payment, error) {
	return s.list(func(p *models.Payment) bool { return p.Status == status }), nil
}

func (s *InMemoryPayments) ListByResident(_ context.Context, residentID id.ResidentID) ([]*models.Payment, error) {
	return s.list(func(p *models.Payment) bool { return p.ResidentID == residentID }), nil
}

func (s *InMemoryPayments) list(keep func(*models.Payment) bool) []*models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Payment, 0)
	for _, p := range s.payments {
		if keep(p) {
			out = append(out, clonePayment(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *InMemoryPayments) CountByStatus(_ context.Context, status models.PaymentStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

type ledgerKey struct {
	resident id.ResidentID
	year     int
}

// InMemoryLedger holds ledger rows and the applied payment entries.
type InMemoryLedger struct {
	mu      sync.RWMutex
	rows    map[ledgerKey]*models.LedgerRow
	entries map[id.PaymentID]models.Entry
}

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		rows:    make(map[ledgerKey]*models.LedgerRow),
		entries: make(map[id.PaymentID]models.Entry),
	}
}

func cloneRow(r *models.LedgerRow) *models.LedgerRow {
	cp := *r
	if r.LastPaymentID != nil {
		v := *r.LastPaymentID
		cp.LastPaymentID = &v
	}
	return &cp
}

// LockRow is a no-op; callers serialize through the in-memory transaction.
func (s *InMemoryLedger) LockRow(context.Context, id.ResidentID, int) error {
	return nil
}

func (s *InMemoryLedger) RecordEntry(ctx context.Context, entry models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.PaymentID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.entries[entry.PaymentID] = entry
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.entries, entry.PaymentID)
	})
	return nil
}

func (s *InMemoryLedger) FindRow(_ context.Context, residentID id.ResidentID, year int) (*models.LedgerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[ledgerKey{residentID, year}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRow(row), nil
}

func (s *InMemoryLedger) UpsertRow(ctx context.Context, row *models.LedgerRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ledgerKey{row.ResidentID, row.Year}
	prev, existed := s.rows[key]
	s.rows[key] = cloneRow(row)
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if existed {
			s.rows[key] = prev
		} else {
			delete(s.rows, key)
		}
	})
	return nil
}

func (s *InMemoryLedger) ListRows(_ context.Context, year int) ([]*models.LedgerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.LedgerRow, 0)
	for key, row := range s.rows {
		if key.year == year {
			out = append(out, cloneRow(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ResidentID.String() < out[j].ResidentID.String() })
	return out, nil
}

func (s *InMemoryLedger) ListByResident(_ context.Context, residentID id.ResidentID) ([]*models.LedgerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.LedgerRow, 0)
	for key, row := range s.rows {
		if key.resident == residentID {
			out = append(out, cloneRow(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (s *InMemoryLedger) SumEntries(_ context.Context, residentID id.ResidentID, year int) (decimal.Decimal, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := decimal.Zero
	n := 0
	for _, e := range s.entries {
		if e.ResidentID == residentID && e.Year == year {
			sum = sum.Add(e.Amount)
			n++
		}
	}
	return sum, n, nil
}
