package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/auth"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/middleware"
)

// AuthHandler serves the admin login and token check.
type AuthHandler struct {
	Auth *auth.Authenticator
}

func NewAuthHandler(a *auth.Authenticator) *AuthHandler {
	return &AuthHandler{Auth: a}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges the admin credentials for a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	tok, err := h.Auth.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.Logger().Warnf("failed admin login from %s", middleware.ClientIP(c))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Identifiants invalides"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"token":     tok.Value,
		"expiresAt": tok.ExpiresAt.UTC().Format(time.RFC3339),
		"message":   "Connexion réussie",
	})
}

// Verify reports the identity of a valid token. JWTAuth has already
// rejected invalid ones.
func (h *AuthHandler) Verify(c echo.Context) error {
	id, ok := middleware.AdminFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token invalide"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"valid": true,
		"user":  echo.Map{"username": id.Username, "role": id.Role},
	})
}
