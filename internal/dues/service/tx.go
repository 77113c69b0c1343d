package service

import (
	"context"
	"sync"

	dErrors "gatehouse/pkg/domain-errors"
	txcontext "gatehouse/pkg/platform/tx"
)

// StoreTx runs the payment decision and its ledger update as one unit.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// inMemoryStoreTx serializes ledger updates for in-memory stores. Journaled
// writes are undone when fn fails.
type inMemoryStoreTx struct {
	mu sync.Mutex
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return txcontext.RunWithJournal(ctx, fn)
}
