package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := New("relay",
		WithFailureThreshold(3),
		WithSuccessThreshold(2),
		WithCooldown(time.Minute),
		WithClock(func() time.Time { return now }),
	)

	assert.True(t, b.Allow())
	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	assert.Equal(t, StateClosed, b.State(), "a success resets the failure streak")

	b.RecordFailure()
	b.RecordFailure()
	change := b.RecordFailure()
	assert.True(t, change.Opened)
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())

	now = now.Add(time.Minute)
	assert.True(t, b.Allow(), "cooldown elapsed, probe admitted")
	assert.Equal(t, StateHalfOpen, b.State())

	t.Run("probe failure reopens", func(t *testing.T) {
		change := b.RecordFailure()
		assert.True(t, change.Opened)
		assert.False(t, b.Allow())
	})

	t.Run("probe successes close", func(t *testing.T) {
		now = now.Add(time.Minute)
		assert.True(t, b.Allow())
		assert.False(t, b.RecordSuccess().Closed)
		assert.True(t, b.RecordSuccess().Closed)
		assert.Equal(t, StateClosed, b.State())
	})
}
