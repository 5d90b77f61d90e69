package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

type tokenBucket struct {
	tokens float64
	last   time.Time
}

// RateLimit applies a per-client token bucket keyed by remote IP.
// capacity is the burst size, refillPerSec the sustained rate.
func RateLimit(capacity, refillPerSec float64) echo.MiddlewareFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*tokenBucket)
	)

	allow := func(key string) bool {
		now := time.Now()
		mu.Lock()
		defer mu.Unlock()

		b, ok := buckets[key]
		if !ok {
			b = &tokenBucket{tokens: capacity, last: now}
			buckets[key] = b
		}
		elapsed := now.Sub(b.last).Seconds()
		if elapsed > 0 {
			b.tokens += elapsed * refillPerSec
			if b.tokens > capacity {
				b.tokens = capacity
			}
			b.last = now
		}
		if b.tokens >= 1 {
			b.tokens--
			return true
		}
		return false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"status":  http.StatusTooManyRequests,
					"message": "Too Many Requests",
				})
			}
			return next(c)
		}
	}
}
