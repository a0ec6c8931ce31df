// Package middleware holds the echo middleware of the request gate: client
// rate limiting, bearer-token authentication, role checks, request deadlines
// and the response cache of the public read endpoints.
package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/auth"
)

// Context keys set by JWTAuth.
const (
	ctxAdminKey = "admin"
	ctxRoleKey  = "role"
)

// AdminFrom returns the identity JWTAuth stored in c.
func AdminFrom(c echo.Context) (auth.Identity, bool) {
	id, ok := c.Get(ctxAdminKey).(auth.Identity)
	return id, ok
}

func setAdmin(c echo.Context, id auth.Identity) {
	c.Set(ctxAdminKey, id)
	c.Set(ctxRoleKey, id.Role)
}

// ClientIP is the identity rate limits are keyed on. It relies on the
// echo IPExtractor configured by the router.
func ClientIP(c echo.Context) string {
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	return "unknown"
}
