// Package ratelimit decides whether a keyed caller may make another request.
// A Redis fixed window serves multi-instance deployments; the local limiter
// keeps one token bucket per key in memory.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NewRedisClient parses url and pings the server with a short timeout.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisLimiter allows limit requests per key in each window.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, limit: int64(limit), window: window}
}

// WindowFor turns a requests-per-second rate and a burst into a fixed window
// that admits burst requests.
func WindowFor(rps float64, burst int) time.Duration {
	if rps <= 0 {
		return time.Second
	}
	seconds := math.Max(float64(burst)/rps, 1)
	return time.Duration(seconds * float64(time.Second))
}

// windowScript counts a hit and sets the window expiry in one step. A key
// found without a TTL gets one too, so no counter outlives its window.
var windowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := windowScript.Run(ctx, l.client, []string{l.key(key)}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}
	return count <= l.limit, nil
}

func (l *RedisLimiter) key(key string) string {
	return l.prefix + ":" + key
}

// LocalLimiter keeps a token bucket per key and forgets keys idle for
// longer than the idle timeout.
type LocalLimiter struct {
	rps   rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalLimiter(rps float64, burst int) *LocalLimiter {
	return &LocalLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    3 * time.Minute,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, found := l.clients[key]
	if !found {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = c
	}
	now := l.now()
	c.lastSeen = now
	return c.limiter.AllowN(now, 1), nil
}

// Run removes idle keys once a minute until ctx is done.
func (l *LocalLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *LocalLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idle {
			delete(l.clients, key)
		}
	}
}
