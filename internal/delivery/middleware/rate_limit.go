package middleware

import (
	"sync"
	"time"

	"coursemart/config"
	domainerrors "coursemart/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter throttles a route per client IP with a token bucket that holds
// LoginAttempts tokens and refills them over LoginWindow.
type RateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	visitors map[string]*visitor
	lastGC   time.Time
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows cfg.RateLimit.LoginAttempts requests per IP in each LoginWindow.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	attempts := cfg.RateLimit.LoginAttempts
	window := cfg.RateLimit.LoginWindow

	return &RateLimiter{
		limit:    rate.Every(window / time.Duration(attempts)),
		burst:    attempts,
		idleTTL:  window,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Limit answers RATE_LIMITED once the caller's bucket is empty.
func (l *RateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !l.allow(c.RealIP()) {
			c.Response().Header().Set("Retry-After", "60")

			return domainerrors.ErrRateLimited
		}

		return next(c)
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictIdle(now)

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// evictIdle drops buckets untouched for a full window; they would be full again anyway.
func (l *RateLimiter) evictIdle(now time.Time) {
	if now.Sub(l.lastGC) < l.idleTTL {
		return
	}
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, key)
		}
	}
	l.lastGC = now
}
