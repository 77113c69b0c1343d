package redis

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/platform/config"
)

func TestOpenWithoutURLKeepsMemoryStores(t *testing.T) {
	client, err := Open(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestOpenRejectsMalformedURL(t *testing.T) {
	_, err := Open(context.Background(), config.RedisConfig{URL: "not a redis url"})
	assert.ErrorContains(t, err, "parse redis URL")
}

func TestPoolCollectorReportsEveryStat(t *testing.T) {
	client := &Client{rdb: redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})}
	t.Cleanup(func() { _ = client.Close() })

	collector := NewPoolCollector(client)
	assert.Equal(t, 6, testutil.CollectAndCount(collector))
	assert.Equal(t, 1, testutil.CollectAndCount(collector, "gatehouse_redis_pool_total_conns"))
	assert.Equal(t, 1, testutil.CollectAndCount(collector, "gatehouse_redis_pool_hits_total"))
}
