package model

import "time"

// Publication statuses.
const (
	PublicationDraft     = "draft"
	PublicationPublished = "published"
)

// Publication models a row in the `publications` table. Only published rows
// are visible on the public listing.
type Publication struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Published reports whether p is publicly visible.
func (p Publication) Published() bool {
	return p.Status == PublicationPublished
}

// PublicationChanges is a partial update. Nil fields keep their value.
type PublicationChanges struct {
	Title   *string
	Content *string
	Author  *string
	Status  *string
}

// Apply copies the present fields onto p.
func (c PublicationChanges) Apply(p *Publication) {
	if c.Title != nil {
		p.Title = *c.Title
	}
	if c.Content != nil {
		p.Content = *c.Content
	}
	if c.Author != nil {
		p.Author = *c.Author
	}
	if c.Status != nil {
		p.Status = *c.Status
	}
}
