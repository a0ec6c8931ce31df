package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/repository"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/validate"
)

// MessagesHandler serves the admin view of contact messages.
type MessagesHandler struct {
	Store repository.MessageStore
}

func NewMessagesHandler(s repository.MessageStore) *MessagesHandler {
	return &MessagesHandler{Store: s}
}

// List returns every message, newest first.
func (h *MessagesHandler) List(c echo.Context) error {
	msgs, err := h.Store.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

type markReadReq struct {
	MessageID string `json:"messageId"`
}

// MarkRead flags one message as read.
func (h *MessagesHandler) MarkRead(c echo.Context) error {
	var req markReadReq
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validate.MessageID(req.MessageID); err != nil {
		return err
	}
	if err := h.Store.MarkRead(c.Request().Context(), req.MessageID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete removes one message.
func (h *MessagesHandler) Delete(c echo.Context) error {
	if err := h.Store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
