package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
)

// MessageRepo stores contact messages in the `contact_messages` table.
type MessageRepo struct {
	db *sql.DB
}

// NewMessageRepo constructs a MessageRepo with the provided DB handle.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

var _ MessageStore = (*MessageRepo)(nil)

// Create inserts m. ID and CreatedAt are generated here.
func (r *MessageRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	const q = `INSERT INTO contact_messages (id, name, email, subject, message, is_read, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, m.ID, m.Name, m.Email, m.Subject, m.Message, m.Read, m.CreatedAt); err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

// List returns all messages, newest first.
func (r *MessageRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	const q = `SELECT id, name, email, subject, message, is_read, created_at
	           FROM contact_messages ORDER BY created_at DESC, seq DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	out := []model.ContactMessage{}
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead sets the read flag. Marking an already read message succeeds.
func (r *MessageRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE contact_messages SET is_read = TRUE WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	// MySQL reports 0 affected rows when the flag was already set.
	return r.exists(ctx, id)
}

// Delete removes the message with the given id.
func (r *MessageRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contact_messages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MessageRepo) exists(ctx context.Context, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM contact_messages WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
