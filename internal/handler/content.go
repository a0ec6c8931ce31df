package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/repository"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/sanitize"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/validate"
)

// ContentHandler serves the editable site content.
type ContentHandler struct {
	Store repository.ContentStore
}

func NewContentHandler(s repository.ContentStore) *ContentHandler {
	return &ContentHandler{Store: s}
}

// Get returns the full document: stored sections over the defaults.
func (h *ContentHandler) Get(c echo.Context) error {
	stored, err := h.Store.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stored.Merge())
}

type contentReq struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Update replaces one section. String values are cleaned with the markup
// policy before they are stored.
func (h *ContentHandler) Update(c echo.Context) error {
	var req contentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validate.ContentUpdate(req.Type, req.Data, model.Sections); err != nil {
		return err
	}
	doc, err := sanitize.Document(req.Data)
	if err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	if err := h.Store.Put(c.Request().Context(), req.Type, doc); err != nil {
		return err
	}
	c.Logger().Infof("site content section %q updated", req.Type)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Contenu mis à jour avec succès"})
}
