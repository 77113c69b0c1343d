// Package redis opens the shared Redis connection that backs idempotency
// records and the submission rate limiter.
package redis

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/idempotency"
	"gatehouse/internal/ratelimit"
)

// Client is the portal's Redis connection.
type Client struct {
	rdb *redis.Client
}

// Open connects and pings Redis. A nil client and nil error mean Redis is not
// configured and callers keep their in-memory stores.
func Open(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Idempotency returns the idempotency record store on this connection.
func (c *Client) Idempotency() *idempotency.RedisStore {
	return idempotency.NewRedis(c.rdb)
}

// RateLimit returns the submission limiter store on this connection.
func (c *Client) RateLimit() *ratelimit.RedisStore {
	return ratelimit.NewRedis(c.rdb)
}

// Health is registered as the "redis" readiness check.
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// PoolCollector exports connection pool statistics, read at scrape time.
type PoolCollector struct {
	client *Client

	hits, misses, timeouts, stale *prometheus.Desc
	total, idle                   *prometheus.Desc
}

func NewPoolCollector(c *Client) *PoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("gatehouse_redis_pool_"+name, help, nil, nil)
	}
	return &PoolCollector{
		client:   c,
		hits:     desc("hits_total", "Connections reused from the pool"),
		misses:   desc("misses_total", "Connections the pool had to dial"),
		timeouts: desc("timeouts_total", "Waits for a pooled connection that timed out"),
		stale:    desc("stale_conns_total", "Stale connections dropped from the pool"),
		total:    desc("total_conns", "Open connections"),
		idle:     desc("idle_conns", "Idle connections"),
	}
}

func (p *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{p.hits, p.misses, p.timeouts, p.stale, p.total, p.idle} {
		ch <- d
	}
}

func (p *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := p.client.rdb.PoolStats()
	ch <- prometheus.MustNewConstMetric(p.hits, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(p.misses, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(p.timeouts, prometheus.CounterValue, float64(stats.Timeouts))
	ch <- prometheus.MustNewConstMetric(p.stale, prometheus.CounterValue, float64(stats.StaleConns))
	ch <- prometheus.MustNewConstMetric(p.total, prometheus.GaugeValue, float64(stats.TotalConns))
	ch <- prometheus.MustNewConstMetric(p.idle, prometheus.GaugeValue, float64(stats.IdleConns))
}
