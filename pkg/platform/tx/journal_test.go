package tx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithJournalUndoesNewestFirst(t *testing.T) {
	var order []int
	err := RunWithJournal(context.Background(), func(ctx context.Context) error {
		OnRollback(ctx, func() { order = append(order, 1) })
		OnRollback(ctx, func() { order = append(order, 2) })
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, []int{2, 1}, order)
}

func TestRunWithJournalKeepsWritesOnSuccess(t *testing.T) {
	undone := false
	err := RunWithJournal(context.Background(), func(ctx context.Context) error {
		OnRollback(ctx, func() { undone = true })
		return nil
	})
	require.NoError(t, err)
	assert.False(t, undone)
}

func TestNestedRunJoinsOuterJournal(t *testing.T) {
	undone := false
	err := RunWithJournal(context.Background(), func(ctx context.Context) error {
		require.NoError(t, RunWithJournal(ctx, func(inner context.Context) error {
			OnRollback(inner, func() { undone = true })
			return nil
		}))
		return errors.New("outer failed")
	})
	require.Error(t, err)
	assert.True(t, undone)
}

func TestOnRollbackWithoutJournalIsDropped(t *testing.T) {
	assert.NotPanics(t, func() { OnRollback(context.Background(), func() {}) })
}
