package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
)

// ContentRepo stores one JSON document per section in `site_content`.
type ContentRepo struct {
	db *sql.DB
}

// NewContentRepo constructs a ContentRepo with the provided DB handle.
func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

var _ ContentStore = (*ContentRepo)(nil)

// Get returns every stored section.
func (r *ContentRepo) Get(ctx context.Context) (model.SiteContent, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT section, document FROM site_content")
	if err != nil {
		return nil, fmt.Errorf("load site content: %w", err)
	}
	defer rows.Close()

	out := model.SiteContent{}
	for rows.Next() {
		var section string
		var doc []byte
		if err := rows.Scan(&section, &doc); err != nil {
			return nil, fmt.Errorf("scan site content: %w", err)
		}
		out[section] = json.RawMessage(doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Put replaces the document of one section.
func (r *ContentRepo) Put(ctx context.Context, section string, doc json.RawMessage) error {
	const q = `INSERT INTO site_content (section, document, updated_at) VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE document = VALUES(document), updated_at = VALUES(updated_at)`
	if _, err := r.db.ExecContext(ctx, q, section, string(doc), time.Now().UTC()); err != nil {
		return fmt.Errorf("save site content %q: %w", section, err)
	}
	return nil
}
