package tx

import (
	"context"
	"sync"
)

// Journal collects compensating writes for stores without native
// transactions. The in-memory stores record one entry per mutation so a unit
// of work that fails halfway can be undone.
type Journal struct {
	mu   sync.Mutex
	undo []func()
}

type journalKey struct{}

// WithJournal returns ctx carrying a fresh journal.
func WithJournal(ctx context.Context) (context.Context, *Journal) {
	j := &Journal{}
	return context.WithValue(ctx, journalKey{}, j), j
}

// JournalFrom extracts the journal from ctx if present.
func JournalFrom(ctx context.Context) (*Journal, bool) {
	j, ok := ctx.Value(journalKey{}).(*Journal)
	return j, ok
}

// OnRollback records undo against the journal in ctx. Without a journal the
// write is already final and undo is dropped.
func OnRollback(ctx context.Context, undo func()) {
	j, ok := JournalFrom(ctx)
	if !ok || undo == nil {
		return
	}
	j.mu.Lock()
	j.undo = append(j.undo, undo)
	j.mu.Unlock()
}

// Rollback runs the recorded undo actions newest first and clears the journal.
func (j *Journal) Rollback() {
	j.mu.Lock()
	undo := j.undo
	j.undo = nil
	j.mu.Unlock()
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
}

// RunWithJournal runs fn with a journal in ctx and rolls it back when fn
// fails. Nested calls join the outer journal.
func RunWithJournal(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := JournalFrom(ctx); ok {
		return fn(ctx)
	}
	jctx, j := WithJournal(ctx)
	if err := fn(jctx); err != nil {
		j.Rollback()
		return err
	}
	return nil
}
