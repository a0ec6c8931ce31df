// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/handler"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/middleware"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/ratelimit"
)

// bodyLimit caps request bodies. Content documents are the largest payload.
const bodyLimit = "1M"

// Gate bundles the middleware shared by the route groups. Nil fields turn
// the corresponding protection off.
type Gate struct {
	// Limiter counts contact submissions per client IP.
	Limiter *ratelimit.Limiter
	// FailClosed refuses contact submissions while the limiter store is down.
	FailClosed bool
	// Cache serves public reads from Redis and is purged by admin writes.
	Cache *middleware.ResponseCache
	// Tokens verifies admin bearer tokens.
	Tokens middleware.TokenVerifier
	// LoginThrottle slows down password guessing on the login route.
	LoginThrottle *middleware.LoginThrottle
	// Timeout bounds the request context of store-backed routes.
	Timeout time.Duration
}

// New returns an Echo instance with the server-wide middleware installed:
// panic recovery, request logging, body size limit and the central error
// handler. trustProxy makes the client IP come from X-Forwarded-For, which
// is only safe behind a reverse proxy that sets it.
func New(logger echo.Logger, trustProxy bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if logger != nil {
		e.Logger = logger
	}
	e.HTTPErrorHandler = handler.ErrorHandler
	if trustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		// Render errors first so the logged status is the one sent.
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			rec := log.JSON{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
			}
			if v.Error != nil {
				rec["error"] = v.Error.Error()
			}
			c.Logger().Infoj(rec)
			return nil
		},
	}))
	e.Use(echomw.BodyLimit(bodyLimit))
	e.Use(echomw.Secure())
	return e
}

// RegisterRoutes registers the routes that need no store: the health check,
// the API welcome and the catch-all that answers 200 on unknown paths.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/api", handler.Welcome)
	e.GET("/api/", handler.Welcome)
	e.RouteNotFound("/*", handler.Fallback)
}
