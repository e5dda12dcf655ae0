package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether a request for key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type entry struct {
	lim  *rate.Limiter
	seen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory.
// Buckets idle for longer than idleTTL are dropped on the next sweep.
type MemoryLimiter struct {
	mu      sync.Mutex
	m       map[string]*entry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	sweep   time.Time
	now     func() time.Time
}

// NewMemoryLimiter allows rps requests per second per key with the given burst.
func NewMemoryLimiter(rps float64, burst int) *MemoryLimiter {
	if burst < 1 {
		burst = 1
	}
	return &MemoryLimiter{
		m:       make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
	}
}

// Allow consumes one token for key. It never returns an error.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.sweep) > l.idleTTL {
		for k, e := range l.m {
			if now.Sub(e.seen) > l.idleTTL {
				delete(l.m, k)
			}
		}
		l.sweep = now
	}

	e, ok := l.m[key]
	if !ok {
		e = &entry{lim: rate.NewLimiter(l.limit, l.burst)}
		l.m[key] = e
	}
	e.seen = now
	return e.lim.AllowN(now, 1), nil
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

var _ Limiter = (*MemoryLimiter)(nil)
