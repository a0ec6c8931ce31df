package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/database"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/model"
)

func testMessageStore(t *testing.T, s MessageStore) {
	ctx := context.Background()

	first := &model.ContactMessage{Name: "Alice", Email: "alice@example.com", Subject: model.DefaultSubject, Message: "Bonjour"}
	second := &model.ContactMessage{Name: "Bob", Email: "bob@example.com", Subject: "Devis", Message: "Un site ?"}
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, "Bonjour", list[1].Message)

	require.NoError(t, s.MarkRead(ctx, first.ID))
	require.NoError(t, s.MarkRead(ctx, first.ID), "marking twice succeeds")
	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.True(t, list[1].Read)
	assert.False(t, list[0].Read)

	assert.ErrorIs(t, s.MarkRead(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "missing"), ErrNotFound)

	require.NoError(t, s.Delete(ctx, first.ID))
	assert.ErrorIs(t, s.Delete(ctx, first.ID), ErrNotFound)
	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func testPublicationStore(t *testing.T, s PublicationStore) {
	ctx := context.Background()

	draft := &model.Publication{Title: "Brouillon", Content: "...", Author: "Admin", Status: model.PublicationDraft}
	live := &model.Publication{Title: "Lancement", Content: "Enfin !", Author: "Admin", Status: model.PublicationPublished}
	require.NoError(t, s.Create(ctx, draft))
	require.NoError(t, s.Create(ctx, live))

	all, err := s.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, live.ID, all[0].ID)

	public, err := s.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, live.ID, public[0].ID)

	status := model.PublicationPublished
	title := "Brouillon publié"
	updated, err := s.Update(ctx, draft.ID, model.PublicationChanges{Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "...", updated.Content)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	got, err := s.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, got.Published())

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Update(ctx, "missing", model.PublicationChanges{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, live.ID))
	assert.ErrorIs(t, s.Delete(ctx, live.ID), ErrNotFound)
	public, err = s.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func testContentStore(t *testing.T, s ContentStore) {
	ctx := context.Background()

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Put(ctx, model.SectionContact, json.RawMessage(`{"email":"a@example.com"}`)))
	require.NoError(t, s.Put(ctx, model.SectionContact, json.RawMessage(`{"email":"b@example.com"}`)))

	got, err = s.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"email":"b@example.com"}`, string(got[model.SectionContact]))
}

func TestMemoryStores(t *testing.T) {
	t.Run("messages", func(t *testing.T) { testMessageStore(t, NewMemoryMessages()) })
	t.Run("publications", func(t *testing.T) { testPublicationStore(t, NewMemoryPublications()) })
	t.Run("content", func(t *testing.T) { testContentStore(t, NewMemoryContent()) })
}

func TestMemoryStores_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewMemoryMessages().Create(ctx, &model.ContactMessage{}), context.Canceled)
	_, err := NewMemoryPublications().List(ctx, true)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, NewMemoryContent().Put(ctx, "hero", nil), context.Canceled)
}

func TestMemoryContent_ReturnsCopies(t *testing.T) {
	s := NewMemoryContent()
	ctx := context.Background()
	doc := json.RawMessage(`{"a":1}`)
	require.NoError(t, s.Put(ctx, "hero", doc))
	doc[2] = 'b'

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got["hero"]))
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("GETYOURSITE_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("GETYOURSITE_TEST_MYSQL_DSN not set")
	}
	db, err := database.OpenDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, nil))
	for _, table := range []string{"contact_messages", "publications", "site_content"} {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMySQLStores(t *testing.T) {
	db := openTestDB(t)
	t.Run("messages", func(t *testing.T) { testMessageStore(t, NewMessageRepo(db)) })
	t.Run("publications", func(t *testing.T) { testPublicationStore(t, NewPublicationRepo(db)) })
	t.Run("content", func(t *testing.T) { testContentStore(t, NewContentRepo(db)) })
}
