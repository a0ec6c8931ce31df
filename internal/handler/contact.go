package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/notify"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/repository"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/sanitize"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/validate"
)

const (
	msgContactReceived = "Message reçu avec succès ! Nous vous recontacterons bientôt."
	noteMailDisabled   = "Configuration Gmail requise pour l'envoi des emails. Le message a été enregistré."
)

// ContactHandler serves the public contact form.
type ContactHandler struct {
	Messages       repository.MessageStore
	Notifier       notify.Notifier
	MailConfigured bool
	NotifyTimeout  time.Duration

	pending sync.WaitGroup
}

// NewContactHandler wires the handler. A nil notifier disables notifications.
func NewContactHandler(messages repository.MessageStore, n notify.Notifier, mailConfigured bool, notifyTimeout time.Duration) *ContactHandler {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &ContactHandler{Messages: messages, Notifier: n, MailConfigured: mailConfigured, NotifyTimeout: notifyTimeout}
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Subject string `json:"subject"`
}

// Submit validates, escapes and stores a submission, then notifies the
// owner in the background. Notification failures are logged only.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := bind(c, &req); err != nil {
		return err
	}
	in := validate.ContactInput{Name: req.Name, Email: req.Email, Message: req.Message, Subject: req.Subject}
	in.Normalize()
	if err := validate.Contact(in); err != nil {
		return err
	}

	subject := in.Subject
	if subject == "" {
		subject = model.DefaultSubject
	}
	msg := model.ContactMessage{
		Name:    sanitize.Text(in.Name),
		Email:   in.Email,
		Subject: sanitize.Text(subject),
		Message: sanitize.Text(in.Message),
	}
	if err := h.Messages.Create(c.Request().Context(), &msg); err != nil {
		return err
	}
	c.Logger().Infof("contact message %s stored", msg.ID)
	h.notify(c.Request().Context(), c.Logger(), msg)

	resp := echo.Map{
		"success":   true,
		"message":   msgContactReceived,
		"timestamp": timestamp(),
	}
	if !h.MailConfigured {
		resp["note"] = noteMailDisabled
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ContactHandler) notify(ctx context.Context, logger echo.Logger, m model.ContactMessage) {
	if h.Notifier == nil {
		return
	}
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.NotifyTimeout)
		defer cancel()
		if err := h.Notifier.NotifyContact(nctx, m); err != nil {
			logger.Errorf("contact notification %s failed: %v", m.ID, err)
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (h *ContactHandler) Wait() {
	h.pending.Wait()
}
