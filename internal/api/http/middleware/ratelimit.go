package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/teamup-dev/teamup-backend/internal/auth"
)

// PerUserRateLimit is a token-bucket limiter keyed by authenticated user.
// Anonymous requests share a single bucket keyed by client IP.
func PerUserRateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var mu sync.Mutex
	limiters := map[string]*entry{}

	// Idle buckets are evicted so the map does not grow without bound.
	go func() {
		for range time.Tick(5 * time.Minute) {
			mu.Lock()
			for key, e := range limiters {
				if time.Since(e.lastSeen) > 10*time.Minute {
					delete(limiters, key)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		key := auth.UserID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		mu.Lock()
		e, ok := limiters[key]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(r, burst)}
			limiters[key] = e
		}
		e.lastSeen = time.Now()
		mu.Unlock()

		if !e.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
