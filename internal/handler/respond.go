// Package handler implements the HTTP endpoints of the GetYourSite API.
// Handlers bind and validate input, sanitise free text, call a store and
// return JSON. Failures are returned as errors and rendered by ErrorHandler.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/repository"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/validate"
)

// now is replaced in tests.
var now = time.Now

// timestamp renders the current UTC time as ISO 8601 with milliseconds.
func timestamp() string {
	return now().UTC().Format("2006-01-02T15:04:05.000Z")
}

const msgServerError = "Erreur serveur"

// errBadBody marks a request body that could not be decoded. It is answered
// with 500, like any other unexpected fault.
var errBadBody = errors.New("malformed request body")

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// ErrorHandler renders handler errors: validation failures as 400 with the
// offending field, missing rows as 404, unknown routes and methods through
// Fallback, and everything else as a generic 500 whose cause is only logged.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status int
		body   any
		ve     *validate.Error
		he     *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		status, body = http.StatusBadRequest, echo.Map{"error": ve.Reason, "field": ve.Field}
	case errors.Is(err, repository.ErrNotFound):
		status, body = http.StatusNotFound, echo.Map{"error": "Ressource introuvable"}
	case errors.As(err, &he) && (he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed):
		if ferr := Fallback(c); ferr != nil {
			c.Logger().Error(ferr)
		}
		return
	case errors.As(err, &he) && he.Code < http.StatusInternalServerError:
		status, body = he.Code, echo.Map{"error": http.StatusText(he.Code)}
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		status, body = http.StatusInternalServerError, echo.Map{"error": msgServerError}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
