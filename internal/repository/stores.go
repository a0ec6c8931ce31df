package repository

import (
	"context"
	"encoding/json"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
)

// MessageStore persists contact messages.
type MessageStore interface {
	// Create assigns ID and CreatedAt and stores m.
	Create(ctx context.Context, m *model.ContactMessage) error
	// List returns every message, newest first.
	List(ctx context.Context) ([]model.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// PublicationStore persists publications.
type PublicationStore interface {
	// Create assigns ID, CreatedAt and UpdatedAt and stores p.
	Create(ctx context.Context, p *model.Publication) error
	// List returns publications newest first, only published ones when
	// publishedOnly is set.
	List(ctx context.Context, publishedOnly bool) ([]model.Publication, error)
	Get(ctx context.Context, id string) (*model.Publication, error)
	Update(ctx context.Context, id string, changes model.PublicationChanges) (*model.Publication, error)
	Delete(ctx context.Context, id string) error
}

// ContentStore persists edited site-content sections.
type ContentStore interface {
	// Get returns the stored sections only; defaults are merged by callers.
	Get(ctx context.Context) (model.SiteContent, error)
	Put(ctx context.Context, section string, doc json.RawMessage) error
}
