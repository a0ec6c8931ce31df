package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/auth"
)

// TokenVerifier checks a raw bearer token. *auth.TokenService satisfies it;
// tests substitute a stub.
type TokenVerifier interface {
	Verify(raw string) (auth.Identity, error)
}

// Client-facing authentication errors.
const (
	msgMissingToken = "Token manquant"
	msgInvalidToken = "Token invalide"
	msgExpiredToken = "Token expiré"
)

// JWTAuth returns an Echo middleware that validates a Bearer token and stores
// the admin identity in the request context, where AdminFrom reads it.
// Requests without a valid token are answered with 401.
func JWTAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A missing header and a non-Bearer scheme get the same answer
			// so the client is told to log in.
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgMissingToken})
			}
			id, err := v.Verify(raw)
			if err != nil {
				// Only expiry gets its own message so the panel can redirect
				// to login. Every other failure reads as an invalid token and
				// the cause stays in the debug log.
				msg := msgInvalidToken
				if errors.Is(err, auth.ErrExpired) {
					msg = msgExpiredToken
				}
				c.Logger().Debugf("bearer token rejected: %v", err)
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
			}
			// Handlers behind this middleware read the identity back with
			// AdminFrom.
			setAdmin(c, id)
			return next(c)
		}
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
