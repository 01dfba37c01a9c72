package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
)

// RateLimiter implements a fixed-window in-memory rate limiter per client IP
type RateLimiter struct {
	ipLimits map[string]*ipLimit
	mu       sync.Mutex

	maxRequests int
	window      time.Duration
	now         func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type ipLimit struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a new rate limiter. Call Stop to end its cleanup loop.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		ipLimits:    make(map[string]*ipLimit),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		stop:        make(chan struct{}),
	}

	go rl.cleanup(5 * time.Minute)

	return rl
}

// Allow records one request from ip and reports whether it is within the limit
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	limit, exists := rl.ipLimits[ip]
	if !exists || !now.Before(limit.resetTime) {
		rl.ipLimits[ip] = &ipLimit{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= rl.maxRequests {
		return false
	}

	limit.requests++
	return true
}

// Remaining returns the requests ip may still make in the current window
func (rl *RateLimiter) Remaining(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limit, exists := rl.ipLimits[ip]
	if !exists || !rl.now().Before(limit.resetTime) {
		return rl.maxRequests
	}

	remaining := rl.maxRequests - limit.requests
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			err := errors.New(errors.ErrCodeRateLimitExceeded, "too many requests")
			logger.Warn("Rate limit exceeded", "client_ip", ip, "path", c.Request.URL.Path, "code", err.Code)
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": err.Message})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining(ip)))
		c.Next()
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.purge()
		}
	}
}

func (rl *RateLimiter) purge() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, limit := range rl.ipLimits {
		if !now.Before(limit.resetTime) {
			delete(rl.ipLimits, ip)
		}
	}
}

// Reset clears all rate limits
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.ipLimits = make(map[string]*ipLimit)
}
