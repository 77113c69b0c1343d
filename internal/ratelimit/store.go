// Package ratelimit caps how often one account may submit registrations,
// vehicle requests and payments.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Result is the outcome of one admission check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int
}

// Store admits requests against a sliding window keyed by caller.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

func (sw *slidingWindow) tryConsume(limit int, now time.Time) (allowed bool, remaining int, resetAt time.Time) {
	sw.dropExpired(now)
	if len(sw.timestamps) >= limit {
		return false, 0, sw.timestamps[0].Add(sw.window)
	}
	sw.timestamps = append(sw.timestamps, now)
	return true, limit - len(sw.timestamps), sw.timestamps[0].Add(sw.window)
}

func (sw *slidingWindow) dropExpired(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// MemoryStore keeps windows in process. Used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*slidingWindow
	now     func() time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*slidingWindow), now: time.Now}
}

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sw, ok := s.windows[key]
	if !ok {
		sw = &slidingWindow{window: window}
		s.windows[key] = sw
	}
	allowed, remaining, resetAt := sw.tryConsume(limit, now)
	return newResult(allowed, limit, remaining, resetAt, now), nil
}

// allowScript trims the window, then adds the request only if capacity is left.
// It returns {allowed, count, oldest score in ms}.
var allowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, ARGV[4])
  count = count + 1
  allowed = 1
end
redis.call('PEXPIRE', key, window)
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local first = now
if oldest[2] then first = tonumber(oldest[2]) end
return {allowed, count, first}
`)

const keyPrefix = "ratelimit:"

// RedisStore shares windows across instances using a sorted set per key.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := s.now()
	nowMs := now.UnixMilli()
	res, err := allowScript.Run(ctx, s.client, []string{keyPrefix + key},
		nowMs, window.Milliseconds(), limit, strconv.FormatInt(nowMs, 10)+"-"+uuid.NewString()).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("rate limit check: unexpected reply length %d", len(res))
	}
	allowed := res[0] == 1
	remaining := max(limit-int(res[1]), 0)
	resetAt := time.UnixMilli(res[2]).Add(window)
	return newResult(allowed, limit, remaining, resetAt, now), nil
}

func newResult(allowed bool, limit, remaining int, resetAt, now time.Time) *Result {
	r := &Result{Allowed: allowed, Limit: limit, Remaining: remaining, ResetAt: resetAt}
	if !allowed {
		r.RetryAfter = max(int(resetAt.Sub(now).Seconds()+0.999), 1)
	}
	return r
}
