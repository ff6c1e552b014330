package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter caps requests per client IP within a rolling window.
// Counters for IPs that went quiet for a full window are swept out so
// the map does not grow with every client ever seen.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	type counter struct {
		count int
		start time.Time
	}

	var (
		mu        sync.Mutex
		counters  = make(map[string]*counter)
		lastSweep = time.Now()
	)

	sweep := func(now time.Time) {
		if now.Sub(lastSweep) < window {
			return
		}
		for key, entry := range counters {
			if now.Sub(entry.start) > window {
				delete(counters, key)
			}
		}
		lastSweep = now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			key := c.RealIP()

			mu.Lock()
			sweep(now)

			entry, ok := counters[key]
			if !ok || now.Sub(entry.start) > window {
				entry = &counter{start: now}
				counters[key] = entry
			}

			if entry.count >= limit {
				mu.Unlock()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			entry.count++
			mu.Unlock()

			return next(c)
		}
	}
}
