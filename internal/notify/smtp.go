package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
)

// SMTPMailer sends notifications through an SMTP relay with STARTTLS and
// PLAIN auth. The dial and the whole exchange honour the context deadline.
type SMTPMailer struct {
	settings Settings
	logger   echo.Logger
	dial     func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewSMTPMailer returns a mailer for s. An empty From defaults to User and an
// empty To sends the notification to the same mailbox.
func NewSMTPMailer(s Settings, logger echo.Logger) *SMTPMailer {
	if s.From == "" {
		s.From = s.User
	}
	if s.To == "" {
		s.To = s.User
	}
	if s.Port == 0 {
		s.Port = 587
	}
	d := &net.Dialer{}
	return &SMTPMailer{settings: s, logger: logger, dial: d.DialContext}
}

// NotifyContact mails m to the configured recipient.
func (s *SMTPMailer) NotifyContact(ctx context.Context, m model.ContactMessage) error {
	addr := net.JoinHostPort(s.settings.Host, strconv.Itoa(s.settings.Port))
	conn, err := s.dial(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.settings.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.settings.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if ok, _ := c.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", s.settings.User, s.settings.Pass, s.settings.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(s.settings.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(s.settings.To); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(compose(s.settings.From, s.settings.To, m)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	if err := c.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}
	s.logger.Infof("contact notification %s sent to %s", m.ID, s.settings.To)
	return nil
}
