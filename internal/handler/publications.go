package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/repository"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/sanitize"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/validate"
)

// PublicationsHandler serves publication listing and admin CRUD.
type PublicationsHandler struct {
	Store repository.PublicationStore
}

func NewPublicationsHandler(s repository.PublicationStore) *PublicationsHandler {
	return &PublicationsHandler{Store: s}
}

type publicationReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Status  string `json:"status"`
}

type publicationPatchReq struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
	Status  *string `json:"status"`
}

// ListPublished returns published publications, newest first.
func (h *PublicationsHandler) ListPublished(c echo.Context) error {
	return h.list(c, true)
}

// ListAll returns every publication for the admin panel.
func (h *PublicationsHandler) ListAll(c echo.Context) error {
	return h.list(c, false)
}

func (h *PublicationsHandler) list(c echo.Context, publishedOnly bool) error {
	pubs, err := h.Store.List(c.Request().Context(), publishedOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pubs)
}

// Create stores a new publication; status defaults to draft.
func (h *PublicationsHandler) Create(c echo.Context) error {
	var req publicationReq
	if err := bind(c, &req); err != nil {
		return err
	}
	in := validate.PublicationInput{Title: req.Title, Content: req.Content, Author: req.Author, Status: req.Status}
	in.Normalize()
	if err := validate.NewPublication(in); err != nil {
		return err
	}
	p := model.Publication{
		Title:   sanitize.Text(in.Title),
		Content: sanitize.Text(in.Content),
		Author:  sanitize.Text(in.Author),
		Status:  in.Status,
	}
	if err := h.Store.Create(c.Request().Context(), &p); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "publication": p})
}

// Update applies a partial update; absent fields are kept.
func (h *PublicationsHandler) Update(c echo.Context) error {
	var req publicationPatchReq
	if err := bind(c, &req); err != nil {
		return err
	}
	patch := validate.PublicationPatch{Title: req.Title, Content: req.Content, Author: req.Author, Status: req.Status}
	patch.Normalize()
	if err := validate.Patch(patch); err != nil {
		return err
	}
	changes := model.PublicationChanges{
		Title:   escaped(patch.Title),
		Content: escaped(patch.Content),
		Author:  escaped(patch.Author),
		Status:  patch.Status,
	}
	p, err := h.Store.Update(c.Request().Context(), c.Param("id"), changes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "publication": p})
}

// Delete removes a publication.
func (h *PublicationsHandler) Delete(c echo.Context) error {
	if err := h.Store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func escaped(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitize.Text(*s)
	return &v
}
