package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// InMemoryRateLimiter caps requests per key (client IP) over a sliding
// window, approximated with two fixed buckets to keep memory bounded.
type InMemoryRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	started time.Time
	current map[string]int
	previous map[string]int
}

func NewInMemoryRateLimiter(limit int, window time.Duration) *InMemoryRateLimiter {
	return &InMemoryRateLimiter{
		limit:    limit,
		window:   window,
		started:  time.Now(),
		current:  make(map[string]int),
		previous: make(map[string]int),
	}
}

func (r *InMemoryRateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	elapsed := now.Sub(r.started)
	if elapsed >= r.window {
		if elapsed >= 2*r.window {
			r.previous = make(map[string]int)
		} else {
			r.previous = r.current
		}
		r.current = make(map[string]int)
		r.started = now
		elapsed = 0
	}
	// Weight the previous bucket by how much of it still overlaps the window.
	carry := float64(r.previous[key]) * (1 - elapsed.Seconds()/r.window.Seconds())
	if int(carry)+r.current[key] >= r.limit {
		return false
	}
	r.current[key]++
	return true
}

// RateLimit returns a middleware that limits by client IP.
func RateLimit(limiter *InMemoryRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
