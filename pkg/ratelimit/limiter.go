package ratelimit

import (
	"context"

	"github.com/puzpuzpuz/xsync"
	"golang.org/x/time/rate"
)

// KeyedLimiter gives every key its own token bucket.
type KeyedLimiter struct {
	limiters *xsync.MapOf[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func NewKeyed(rps float64, burst int) *KeyedLimiter {
	if burst <= 0 {
		burst = 1
	}

	return &KeyedLimiter{
		limiters: xsync.NewMapOf[*rate.Limiter](),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Allow never blocks, use it to reject inbound requests.
func (l *KeyedLimiter) Allow(key string) bool {
	return l.get(key).Allow()
}

// Wait blocks until the key has a token or the context is done, use it to
// throttle outbound calls.
func (l *KeyedLimiter) Wait(ctx context.Context, key string) error {
	return l.get(key).Wait(ctx)
}

func (l *KeyedLimiter) get(key string) *rate.Limiter {
	if limiter, ok := l.limiters.Load(key); ok {
		return limiter
	}

	limiter, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.limit, l.burst))
	return limiter
}
