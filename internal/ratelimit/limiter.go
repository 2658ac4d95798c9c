// Package ratelimit bounds credential attempts with fixed-window counters
// stored in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result describes one rate limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// Limiter counts attempts per key within a fixed window.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewLimiter builds a limiter allowing limit attempts per window.
func NewLimiter(client *redis.Client, limit int, window time.Duration) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{client: client, limit: limit, window: window, prefix: "ratelimit"}
}

// Allow records an attempt for key and reports whether it is within budget.
func (l *Limiter) Allow(ctx context.Context, scope, key string) (*Result, error) {
	redisKey := fmt.Sprintf("%s:%s:%s", l.prefix, scope, key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	count := int(incr.Val())
	resetIn := ttl.Val()
	if resetIn < 0 {
		resetIn = l.window
	}

	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &Result{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}
