package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

// RateLimiter is a fixed-window counter keyed by client address. Counters live
// in process memory and reset every window; nothing survives a restart.
type RateLimiter struct {
	hits   *gocache.Cache
	max    int64
	window time.Duration
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:   gocache.New(window, 2*window),
		max:    int64(max),
		window: window,
	}
}

// Allow records a hit for key in the current window and reports whether the
// ceiling is respected. Two concurrent first hits can race the Set; the worst
// case is one uncounted request, acceptable for an abuse throttle.
func (l *RateLimiter) Allow(key string) bool {
	winStart := time.Now().UTC().Truncate(l.window)
	k := fmt.Sprintf("%s:%d", key, winStart.Unix())
	n, err := l.hits.IncrementInt64(k, 1)
	if err != nil {
		l.hits.Set(k, int64(1), l.window)
		n = 1
	}
	return n <= l.max
}

// Middleware throttles by client IP, answering 429 beyond the ceiling.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
