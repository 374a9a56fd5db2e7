package middleware

import (
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter throttles operations per string key with independent token buckets.
//
// Used to cap transfer initiations per sender account. Buckets are kept for
// the lifetime of the process; the key space (account ids) is small enough
// that eviction is not worth the bookkeeping.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewKeyedLimiter returns a limiter allowing perMinute operations per key.
func NewKeyedLimiter(perMinute int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (kl *KeyedLimiter) limiter(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	l, ok := kl.limiters[key]
	if !ok {
		l = rate.NewLimiter(kl.limit, kl.burst)
		kl.limiters[key] = l
	}

	return l
}

// Allow reports whether the operation for the key may proceed now.
//
// When throttled it also returns how long the caller should wait before
// retrying, suitable for a Retry-After header.
func (kl *KeyedLimiter) Allow(key string) (bool, time.Duration) {
	r := kl.limiter(key).Reserve()

	delay := r.Delay()
	if delay > 0 {
		r.Cancel()
		return false, delay
	}

	return true, 0
}

// RetryAfterSeconds formats a throttle delay for the Retry-After header,
// rounding up so clients never retry early.
func RetryAfterSeconds(d time.Duration) string {
	secs := int64((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}

	return strconv.FormatInt(secs, 10)
}
