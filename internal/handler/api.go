package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Welcome answers GET on the API root and on any unknown path.
func Welcome(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		path = "API de GetYourSite"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Bienvenue sur l'API de GetYourSite",
		"path":      path,
		"timestamp": timestamp(),
		"status":    "active",
	})
}

// Fallback answers every request no route matched, always with 200.
func Fallback(c echo.Context) error {
	var msg string
	switch m := c.Request().Method; m {
	case http.MethodGet:
		return Welcome(c)
	case http.MethodHead:
		return c.NoContent(http.StatusOK)
	case http.MethodPost:
		msg = "API POST endpoint active"
	default:
		msg = m + " endpoint active"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg, "timestamp": timestamp()})
}
