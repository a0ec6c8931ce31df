package model

import "time"

// DefaultSubject is stored when a contact submission carries no subject.
const DefaultSubject = "Nouveau message de contact"

// ContactMessage represents a row in the `contact_messages` table. Name,
// Subject and Message are stored escaped; Email is stored lower-cased.
// The JSON field names follow what the admin panel reads (`_id`,
// `createdAt`).
type ContactMessage struct {
	ID        string    `json:"_id"`       // contact_messages.id (uuid)
	Name      string    `json:"name"`      // contact_messages.name
	Email     string    `json:"email"`     // contact_messages.email
	Subject   string    `json:"subject"`   // contact_messages.subject
	Message   string    `json:"message"`   // contact_messages.message
	Read      bool      `json:"read"`      // contact_messages.is_read
	CreatedAt time.Time `json:"createdAt"` // contact_messages.created_at
}
