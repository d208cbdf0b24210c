package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

type KeyFunc func(*fiber.Ctx) string

func KeyByIP() KeyFunc {
	return func(c *fiber.Ctx) string {
		return "ip:" + c.IP()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key. Idle buckets are evicted during
// lookups once they have not been seen for ttl.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFn    KeyFunc
	ttl      time.Duration
	mu       sync.Mutex
	visitors map[string]*visitor
	lookups  uint64
}

func NewRateLimiter(rps float64, burst int, keyFn KeyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		ttl:      10 * time.Minute,
		visitors: make(map[string]*visitor),
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.lookups++
	if rl.lookups >= 5000 {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.lookups = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}

	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.limiter(rl.keyFn(c)).Allow() {
			return c.Next()
		}

		c.Set(fiber.HeaderRetryAfter, "1")
		return TooManyRequests("Too many requests, please try again later")
	}
}
