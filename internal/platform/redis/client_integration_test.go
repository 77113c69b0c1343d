//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/platform/config"
	platformredis "gatehouse/internal/platform/redis"
	"gatehouse/pkg/testutil/containers"
)

func TestOpenServesBothStores(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()

	client, err := platformredis.Open(ctx, config.RedisConfig{URL: rc.URL, PoolSize: 4})
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Health(ctx))

	ok, err := client.Idempotency().Reserve(ctx, "open:key", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, client.Idempotency().Release(ctx, "open:key"))

	res, err := client.RateLimit().Allow(ctx, "open:acct", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
