package router

import (
	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/handler"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/middleware"
)

// RegisterPublic registers the unauthenticated site endpoints.
func RegisterPublic(e *echo.Echo, g Gate, contact *handler.ContactHandler, content *handler.ContentHandler, pubs *handler.PublicationsHandler) {
	// The limiter runs before binding so rejected clients never reach the
	// store or the mailer.
	e.POST("/api/contact", contact.Submit,
		middleware.RateLimitWithConfig(middleware.RateLimitConfig{Limiter: g.Limiter, FailClosed: g.FailClosed}),
		middleware.Deadline(g.Timeout),
	)

	cache := g.Cache.Middleware()
	e.GET("/api/content", content.Get, middleware.Deadline(g.Timeout), cache)
	e.GET("/api/publications", pubs.ListPublished, middleware.Deadline(g.Timeout), cache)
}
