// Package queue carries contact notifications over RabbitMQ: the HTTP side
// publishes an event per stored message and a background consumer delivers
// it through a mailer.
package queue

import (
	"time"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
)

// DefaultContactQueue is the queue contact events are published to.
const DefaultContactQueue = "contact.received"

// ContactReceivedEvent is published after a contact message is stored. It
// contains everything the mailer needs, so consumers never query the store.
type ContactReceivedEvent struct {
	MessageID  string `json:"message_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	ReceivedAt string `json:"received_at"`
}

// NewContactReceivedEvent builds the event for m.
func NewContactReceivedEvent(m model.ContactMessage) ContactReceivedEvent {
	return ContactReceivedEvent{
		MessageID:  m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Subject:    m.Subject,
		Message:    m.Message,
		ReceivedAt: m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// ContactMessage converts the event back into the stored message shape.
func (e ContactReceivedEvent) ContactMessage() model.ContactMessage {
	created, _ := time.Parse(time.RFC3339Nano, e.ReceivedAt)
	return model.ContactMessage{
		ID:        e.MessageID,
		Name:      e.Name,
		Email:     e.Email,
		Subject:   e.Subject,
		Message:   e.Message,
		CreatedAt: created,
	}
}
