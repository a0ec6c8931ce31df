// Package notify tells the site owner about new contact messages, by mail
// when SMTP is configured and through the log otherwise.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
)

// Notifier delivers a notification for a stored contact message.
type Notifier interface {
	NotifyContact(ctx context.Context, m model.ContactMessage) error
}

// Settings configures mail delivery.
type Settings struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
}

// Configured reports whether credentials are present.
func (s Settings) Configured() bool {
	return s.User != "" && s.Pass != "" && s.Host != ""
}

// New returns an SMTPMailer when s is configured and a LogMailer otherwise.
func New(s Settings, logger echo.Logger) Notifier {
	if !s.Configured() {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(s, logger)
}

// LogMailer writes the notification to the log instead of sending it.
type LogMailer struct {
	logger echo.Logger
}

// NewLogMailer returns a LogMailer.
func NewLogMailer(logger echo.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// NotifyContact logs m.
func (l *LogMailer) NotifyContact(_ context.Context, m model.ContactMessage) error {
	l.logger.Infof("[MOCK EMAIL] contact from %s <%s> subject=%q id=%s",
		html.UnescapeString(m.Name), m.Email, html.UnescapeString(m.Subject), m.ID)
	return nil
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, m model.ContactMessage) error

// NotifyContact calls f.
func (f Func) NotifyContact(ctx context.Context, m model.ContactMessage) error { return f(ctx, m) }

// headerSafe keeps user text from breaking out of a header line.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

// compose renders the notification as a plain-text message. Stored fields
// are entity-escaped, so they are unescaped for the mail body.
func compose(from, to string, m model.ContactMessage) []byte {
	name := html.UnescapeString(m.Name)
	subject := html.UnescapeString(m.Subject)
	var b strings.Builder
	fmt.Fprintf(&b, "From: GetYourSite <%s>\r\n", headerSafe(from))
	fmt.Fprintf(&b, "To: %s\r\n", headerSafe(to))
	fmt.Fprintf(&b, "Reply-To: %s\r\n", headerSafe(m.Email))
	fmt.Fprintf(&b, "Subject: [GetYourSite] %s\r\n", headerSafe(subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Nouveau message de %s <%s>\r\n", name, m.Email)
	fmt.Fprintf(&b, "Reçu le %s\r\n\r\n", m.CreatedAt.UTC().Format("02/01/2006 15:04 MST"))
	body := strings.ReplaceAll(html.UnescapeString(m.Message), "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
