package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
)

// PublicationRepo stores publications in the `publications` table.
type PublicationRepo struct {
	db *sql.DB
}

// NewPublicationRepo constructs a PublicationRepo with the provided DB handle.
func NewPublicationRepo(db *sql.DB) *PublicationRepo {
	return &PublicationRepo{db: db}
}

var _ PublicationStore = (*PublicationRepo)(nil)

const publicationColumns = "id, title, content, author, status, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanPublication(s scanner) (*model.Publication, error) {
	var p model.Publication
	if err := s.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts p.
func (r *PublicationRepo) Create(ctx context.Context, p *model.Publication) error {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = now, now
	const q = `INSERT INTO publications (` + publicationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, p.ID, p.Title, p.Content, p.Author, p.Status, p.CreatedAt, p.UpdatedAt); err != nil {
		return fmt.Errorf("insert publication: %w", err)
	}
	return nil
}

// List returns publications newest first.
func (r *PublicationRepo) List(ctx context.Context, publishedOnly bool) ([]model.Publication, error) {
	q := `SELECT ` + publicationColumns + ` FROM publications`
	var args []any
	if publishedOnly {
		q += ` WHERE status = ?`
		args = append(args, model.PublicationPublished)
	}
	q += ` ORDER BY created_at DESC, seq DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	defer rows.Close()

	out := []model.Publication{}
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one publication.
func (r *PublicationRepo) Get(ctx context.Context, id string) (*model.Publication, error) {
	const q = `SELECT ` + publicationColumns + ` FROM publications WHERE id = ?`
	p, err := scanPublication(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get publication: %w", err)
	}
	return p, nil
}

// Update applies changes under a row lock and returns the updated row.
func (r *PublicationRepo) Update(ctx context.Context, id string, changes model.PublicationChanges) (*model.Publication, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const qSelect = `SELECT ` + publicationColumns + ` FROM publications WHERE id = ? FOR UPDATE`
	p, err := scanPublication(tx.QueryRowContext(ctx, qSelect, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock publication: %w", err)
	}

	changes.Apply(p)
	p.UpdatedAt = time.Now().UTC()
	const qUpdate = `UPDATE publications SET title = ?, content = ?, author = ?, status = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, qUpdate, p.Title, p.Content, p.Author, p.Status, p.UpdatedAt, p.ID); err != nil {
		return nil, fmt.Errorf("update publication: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the publication with the given id.
func (r *PublicationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM publications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete publication: %w", err)
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
