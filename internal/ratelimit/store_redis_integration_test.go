//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/ratelimit"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/testutil"
	"gatehouse/pkg/testutil/containers"
)

func TestRedisStore(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	opts, err := redis.ParseURL(rc.URL)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, client.FlushDB(ctx).Err())
	store := ratelimit.NewRedis(client)

	t.Run("admits up to the limit", func(t *testing.T) {
		for i := range 3 {
			res, err := store.Allow(ctx, "seq", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, res.Allowed)
			assert.Equal(t, 2-i, res.Remaining)
		}
		res, err := store.Allow(ctx, "seq", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Positive(t, res.RetryAfter)
	})

	t.Run("concurrent callers never exceed the limit", func(t *testing.T) {
		result := testutil.RunConcurrent(25, func(int) error {
			res, err := store.Allow(ctx, "burst", 10, time.Minute)
			if err != nil {
				return err
			}
			if !res.Allowed {
				return sentinel.ErrConflict
			}
			return nil
		})
		assert.Zero(t, result.Errors)
		assert.Equal(t, int32(10), result.Successes)
		assert.Equal(t, int32(15), result.Lost)
	})
}
