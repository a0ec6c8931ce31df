package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
)

// The memory stores keep rows in insertion order and list them reversed,
// which is newest first even when two rows share a timestamp.

// MemoryMessages is an in-process MessageStore.
type MemoryMessages struct {
	mu   sync.RWMutex
	rows []model.ContactMessage
}

// NewMemoryMessages returns an empty store.
func NewMemoryMessages() *MemoryMessages { return &MemoryMessages{} }

var _ MessageStore = (*MemoryMessages)(nil)

func (s *MemoryMessages) Create(ctx context.Context, m *model.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	s.mu.Lock()
	s.rows = append(s.rows, *m)
	s.mu.Unlock()
	return nil
}

func (s *MemoryMessages) List(ctx context.Context) ([]model.ContactMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ContactMessage, 0, len(s.rows))
	for i := len(s.rows) - 1; i >= 0; i-- {
		out = append(out, s.rows[i])
	}
	return out, nil
}

func (s *MemoryMessages) MarkRead(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryMessages) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// MemoryPublications is an in-process PublicationStore.
type MemoryPublications struct {
	mu   sync.RWMutex
	rows []model.Publication
}

// NewMemoryPublications returns an empty store.
func NewMemoryPublications() *MemoryPublications { return &MemoryPublications{} }

var _ PublicationStore = (*MemoryPublications)(nil)

func (s *MemoryPublications) Create(ctx context.Context, p *model.Publication) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = now, now
	s.mu.Lock()
	s.rows = append(s.rows, *p)
	s.mu.Unlock()
	return nil
}

func (s *MemoryPublications) List(ctx context.Context, publishedOnly bool) ([]model.Publication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Publication{}
	for i := len(s.rows) - 1; i >= 0; i-- {
		if publishedOnly && !s.rows[i].Published() {
			continue
		}
		out = append(out, s.rows[i])
	}
	return out, nil
}

func (s *MemoryPublications) Get(ctx context.Context, id string) (*model.Publication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.rows {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryPublications) Update(ctx context.Context, id string, changes model.PublicationChanges) (*model.Publication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			changes.Apply(&s.rows[i])
			s.rows[i].UpdatedAt = time.Now().UTC()
			p := s.rows[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryPublications) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// MemoryContent is an in-process ContentStore.
type MemoryContent struct {
	mu       sync.RWMutex
	sections map[string]json.RawMessage
}

// NewMemoryContent returns an empty store.
func NewMemoryContent() *MemoryContent {
	return &MemoryContent{sections: make(map[string]json.RawMessage)}
}

var _ ContentStore = (*MemoryContent)(nil)

func (s *MemoryContent) Get(ctx context.Context) (model.SiteContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(model.SiteContent, len(s.sections))
	for k, v := range s.sections {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out, nil
}

func (s *MemoryContent) Put(ctx context.Context, section string, doc json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.sections[section] = append(json.RawMessage(nil), doc...)
	s.mu.Unlock()
	return nil
}
