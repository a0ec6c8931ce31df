package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/ratelimit"
)

const (
	msgTooManyRequests = "Trop de requêtes. Veuillez réessayer plus tard."
	msgUnavailable     = "Service temporairement indisponible. Veuillez réessayer plus tard."
)

// storeErrorRetry is the Retry-After sent when a fail-closed limiter cannot
// reach its counter store.
const storeErrorRetry = 60

// RateLimitConfig configures RateLimitWithConfig.
type RateLimitConfig struct {
	// Limiter decides each request. Nil disables the middleware.
	Limiter *ratelimit.Limiter
	// FailClosed answers 503 when the counter store fails instead of
	// letting the request through.
	FailClosed bool
}

// RateLimit counts every request against the client IP before the handler
// runs. Admitted responses carry X-RateLimit-Limit and X-RateLimit-Remaining;
// refused ones get 429 with Retry-After. When the counter store fails the
// request is let through and the error logged. A nil limiter disables the
// middleware.
func RateLimit(l *ratelimit.Limiter) echo.MiddlewareFunc {
	return RateLimitWithConfig(RateLimitConfig{Limiter: l})
}

// RateLimitWithConfig is RateLimit with a choice of store-failure policy.
func RateLimitWithConfig(cfg RateLimitConfig) echo.MiddlewareFunc {
	l := cfg.Limiter
	if l == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := ClientIP(c)
			d, err := l.Check(c.Request().Context(), ip)
			if err != nil {
				c.Logger().Warnf("[ratelimit] store error for %s: %v", ip, err)
				if !cfg.FailClosed {
					return next(c)
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(storeErrorRetry))
				return c.JSON(http.StatusServiceUnavailable, echo.Map{
					"error":       msgUnavailable,
					"retry_after": storeErrorRetry,
				})
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				secs := retryAfterSeconds(d)
				h.Set("Retry-After", strconv.Itoa(secs))
				c.Logger().Infof("[ratelimit] block ip=%s count=%d retry=%ds", ip, d.Count, secs)
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       msgTooManyRequests,
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}

func retryAfterSeconds(d ratelimit.Decision) int {
	secs := int(math.Ceil(d.RetryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
