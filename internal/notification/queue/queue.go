// Package queue dispatches notifications on background workers.
//
// Enqueue never blocks: when the buffer is full the message is dropped and
// counted. Send failures are logged and never retried. Callers treat every
// notification as best effort.
package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"gatehouse/internal/notification/models"
)

var (
	ErrQueueFull = errors.New("notification queue full")
	ErrClosed    = errors.New("notification queue closed")
)

// Sender delivers a single message to the outside world.
type Sender interface {
	Send(ctx context.Context, msg models.Message) error
}

type Queue struct {
	sender      Sender
	logger      *slog.Logger
	metrics     *Metrics
	size        int
	workers     int
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	ch     chan models.Message
	wg     sync.WaitGroup
}

type Option func(*Queue)

func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(q *Queue) {
		q.metrics = m
	}
}

func WithQueueSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.size = n
		}
	}
}

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithSendTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.sendTimeout = d
		}
	}
}

// New starts the worker goroutines immediately.
func New(sender Sender, opts ...Option) *Queue {
	q := &Queue{
		sender:      sender,
		size:        256,
		workers:     2,
		sendTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.logger == nil {
		q.logger = slog.Default()
	}
	q.ch = make(chan models.Message, q.size)

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.run()
	}
	return q
}

// Enqueue hands msg to the workers without blocking.
func (q *Queue) Enqueue(ctx context.Context, msg models.Message) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.ch <- msg:
		if q.metrics != nil {
			q.metrics.Enqueued.WithLabelValues(string(msg.Kind)).Inc()
		}
		return nil
	default:
		if q.metrics != nil {
			q.metrics.Dropped.WithLabelValues(string(msg.Kind)).Inc()
		}
		q.logger.WarnContext(ctx, "notification dropped: queue full", "kind", msg.Kind, "to", msg.To)
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits for queued ones to be sent or for
// ctx to expire.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) run() {
	defer q.wg.Done()
	for msg := range q.ch {
		q.deliver(msg)
	}
}

func (q *Queue) deliver(msg models.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), q.sendTimeout)
	defer cancel()

	start := time.Now()
	err := q.sender.Send(ctx, msg)
	if q.metrics != nil {
		q.metrics.observe(msg.Kind, err, time.Since(start))
	}
	if err != nil {
		q.logger.Error("notification send failed", "kind", msg.Kind, "to", msg.To, "error", err)
	}
}
