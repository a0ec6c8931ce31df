package database

import (
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_DSN(t *testing.T) {
	dsn := Params{User: "app", Pass: "s3cret", Host: "db", Port: "3306", Name: "getyoursite"}.DSN()

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "s3cret", cfg.Passwd)
	assert.Equal(t, "db:3306", cfg.Addr)
	assert.Equal(t, "getyoursite", cfg.DBName)
	assert.True(t, cfg.ParseTime)
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		b, err := fs.ReadFile(migrations, "migrations/"+e.Name())
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(b), "-- +goose Up"), e.Name())
		assert.True(t, strings.Contains(string(b), "-- +goose Down"), e.Name())
	}
}

func TestOpenAndMigrate(t *testing.T) {
	dsn := os.Getenv("GETYOURSITE_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("GETYOURSITE_TEST_MYSQL_DSN not set")
	}
	db, err := OpenDSN(dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, nil))
	// Re-running is a no-op.
	require.NoError(t, Migrate(db, nil))
}
