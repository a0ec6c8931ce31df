package router

import (
	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/auth"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/handler"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/middleware"
)

// RegisterAdmin registers the admin panel endpoints under /api/admin. Login
// is open but throttled; everything else needs an ADMIN token.
//
// Middleware is attached per route rather than on the group so unknown
// /api/admin paths still reach the catch-all instead of the token check.
func RegisterAdmin(e *echo.Echo, g Gate, a *handler.AuthHandler, content *handler.ContentHandler, msgs *handler.MessagesHandler, pubs *handler.PublicationsHandler) {
	admin := e.Group("/api/admin")

	admin.POST("/login", a.Login, g.LoginThrottle.Middleware())

	protected := []echo.MiddlewareFunc{
		middleware.JWTAuth(g.Tokens),
		middleware.RequireRole(auth.RoleAdmin),
		middleware.Deadline(g.Timeout),
	}
	// Writes that change what public reads return also drop cached responses.
	writes := append(append([]echo.MiddlewareFunc{}, protected...), g.Cache.PurgeOnWrite())

	admin.GET("/verify", a.Verify, protected...)

	// ---- Content ----
	admin.PUT("/content", content.Update, writes...)

	// ---- Messages ----
	admin.GET("/messages", msgs.List, protected...)
	admin.PUT("/messages/read", msgs.MarkRead, protected...)
	admin.DELETE("/messages/:id", msgs.Delete, protected...)

	// ---- Publications ----
	admin.GET("/publications", pubs.ListAll, protected...)
	admin.POST("/publications", pubs.Create, writes...)
	admin.PUT("/publications/:id", pubs.Update, writes...)
	admin.DELETE("/publications/:id", pubs.Delete, writes...)
}
