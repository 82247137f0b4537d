package auth

import (
	"context"
	"sync"
	"time"
)

// RateLimiter limits requests per key over a sliding one-minute window
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*bucket
}

type bucket struct {
	count   int
	resetAt time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

// NewIPRateLimiter creates a per-IP limiter with a one-minute window
func NewIPRateLimiter(limit int) *RateLimiter {
	return NewRateLimiter(limit, time.Minute)
}

// NewUserRateLimiter creates a per-user limiter with a one-minute window
func NewUserRateLimiter(limit int) *RateLimiter {
	return NewRateLimiter(limit, time.Minute)
}

// Allow reports whether a request for the key is within the limit
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		l.buckets[key] = &bucket{count: 1, resetAt: now.Add(l.window)}
		l.sweep(now)
		return true, nil
	}

	if b.count >= l.limit {
		return false, nil
	}

	b.count++
	return true, nil
}

// sweep drops expired buckets; called with the lock held
func (l *RateLimiter) sweep(now time.Time) {
	if len(l.buckets) < 10000 {
		return
	}
	for key, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, key)
		}
	}
}
