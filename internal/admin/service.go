// Package admin serves the staff dashboard: work queue sizes and the recent
// audit trail.
package admin

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"gatehouse/internal/platform/metrics"
	"gatehouse/pkg/platform/audit"
	"gatehouse/pkg/requestcontext"
)

// PendingCounter reports the size of one review queue.
type PendingCounter interface {
	CountPending(ctx context.Context) (int, error)
}

// StickerCounter reports how many stickers are currently active.
type StickerCounter interface {
	CountActiveStickers(ctx context.Context) (int, error)
}

// AuditReader lists the newest audit events.
type AuditReader interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

type Service struct {
	registrations PendingCounter
	vehicles      PendingCounter
	payments      PendingCounter
	stickers      StickerCounter
	audit         AuditReader
	metrics       *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditReader enables the recent activity feed.
func WithAuditReader(r AuditReader) Option {
	return func(s *Service) { s.audit = r }
}

func NewService(registrations, vehicles, payments PendingCounter, stickers StickerCounter, opts ...Option) *Service {
	s := &Service{
		registrations: registrations,
		vehicles:      vehicles,
		payments:      payments,
		stickers:      stickers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary contains the staff work queue sizes.
type Summary struct {
	PendingRegistrations   int       `json:"pending_registrations"`
	PendingVehicleRequests int       `json:"pending_vehicle_requests"`
	PendingPayments        int       `json:"pending_payments"`
	ActiveStickers         int       `json:"active_stickers"`
	Timestamp              time.Time `json:"timestamp"`
}

const (
	queueRegistrations   = "registrations"
	queueVehicleRequests = "vehicle_requests"
	queuePayments        = "payments"
)

// GetSummary runs the counts concurrently; the first failure cancels the rest.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{Timestamp: requestcontext.Now(ctx)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.PendingRegistrations, err = count(gctx, "pending registrations", s.registrations.CountPending)
		return err
	})
	g.Go(func() (err error) {
		summary.PendingVehicleRequests, err = count(gctx, "pending vehicle requests", s.vehicles.CountPending)
		return err
	})
	g.Go(func() (err error) {
		summary.PendingPayments, err = count(gctx, "pending payments", s.payments.CountPending)
		return err
	})
	g.Go(func() (err error) {
		summary.ActiveStickers, err = count(gctx, "active stickers", s.stickers.CountActiveStickers)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SetPending(queueRegistrations, summary.PendingRegistrations)
		s.metrics.SetPending(queueVehicleRequests, summary.PendingVehicleRequests)
		s.metrics.SetPending(queuePayments, summary.PendingPayments)
	}
	return summary, nil
}

func count(ctx context.Context, what string, fn func(context.Context) (int, error)) (int, error) {
	n, err := fn(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}

// GetRecentAuditEvents returns the newest audit events, or none when no audit
// reader is configured.
func (s *Service) GetRecentAuditEvents(ctx context.Context, limit int) ([]audit.Event, error) {
	if s.audit == nil {
		return []audit.Event{}, nil
	}
	return s.audit.ListRecent(ctx, limit)
}
