// Package ratelimit enforces the monthly per-domain check allowance using
// Redis counters. Keys roll over naturally at each calendar month.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts checks per domain per calendar month.
type Limiter struct {
	rdb   *redis.Client
	limit int
}

func New(rdb *redis.Client, limit int) *Limiter {
	return &Limiter{rdb: rdb, limit: limit}
}

// Limit returns the configured monthly allowance.
func (l *Limiter) Limit() int {
	return l.limit
}

func key(domain string, now time.Time) string {
	return fmt.Sprintf("usage:%s:%s", domain, now.UTC().Format("2006-01"))
}

// Usage reports how many checks the domain has used this month without
// consuming one. A missing key counts as zero.
func (l *Limiter) Usage(ctx context.Context, domain string) (int, error) {
	used, err := l.rdb.Get(ctx, key(domain, time.Now())).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read usage for %s: %w", domain, err)
	}
	return used, nil
}

// Record consumes one check for the domain and returns the new usage count.
// The key expires 32 days after its first touch, past the month boundary,
// so stale counters clean themselves up.
func (l *Limiter) Record(ctx context.Context, domain string) (int, error) {
	k := key(domain, time.Now())

	used, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("record usage for %s: %w", domain, err)
	}
	if used == 1 {
		if err := l.rdb.Expire(ctx, k, 32*24*time.Hour).Err(); err != nil {
			return int(used), fmt.Errorf("set usage expiry for %s: %w", domain, err)
		}
	}
	return int(used), nil
}
