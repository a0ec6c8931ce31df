package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// LoginThrottle limits login attempts per client IP with a token bucket.
type LoginThrottle struct {
	mu       sync.Mutex
	limiters map[string]*throttleEntry
	every    time.Duration
	burst    int
	now      func() time.Time
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginThrottle admits burst attempts, then one per every.
func NewLoginThrottle(every time.Duration, burst int) *LoginThrottle {
	if every <= 0 {
		every = 6 * time.Second
	}
	if burst < 1 {
		burst = 1
	}
	return &LoginThrottle{
		limiters: make(map[string]*throttleEntry),
		every:    every,
		burst:    burst,
		now:      time.Now,
	}
}

// allow consumes one attempt for ip and returns the wait before the next
// one is admitted when it is refused.
func (t *LoginThrottle) allow(ip string) (bool, time.Duration) {
	now := t.now()
	t.mu.Lock()
	e, ok := t.limiters[ip]
	if !ok {
		e = &throttleEntry{limiter: rate.NewLimiter(rate.Every(t.every), t.burst)}
		t.limiters[ip] = e
	}
	e.lastSeen = now
	t.mu.Unlock()

	if e.limiter.AllowN(now, 1) {
		return true, 0
	}
	r := e.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return false, delay
}

// Middleware answers throttled attempts with 429. A nil throttle admits
// every attempt.
func (t *LoginThrottle) Middleware() echo.MiddlewareFunc {
	if t == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, wait := t.allow(ClientIP(c))
			if !ok {
				secs := int(math.Ceil(wait.Seconds()))
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "Trop de tentatives de connexion. Veuillez réessayer plus tard.",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}

// Cleanup drops limiters idle for longer than idle and returns how many
// were removed.
func (t *LoginThrottle) Cleanup(idle time.Duration) int {
	cutoff := t.now().Add(-idle)
	t.mu.Lock()
	defer t.mu.Unlock()
	removed := 0
	for ip, e := range t.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(t.limiters, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (t *LoginThrottle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.limiters)
}
