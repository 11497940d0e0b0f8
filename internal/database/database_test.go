package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/exceedauto/exceedauto-api/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "admin_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE admins (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	require.NoError(t, err)
	return db
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, EnsureAdmin(db))
	require.NoError(t, EnsureAdmin(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count))
	assert.Equal(t, 1, count, "bootstrap must never create a second admin")
}

func TestBootstrappedCredentialsVerify(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, EnsureAdmin(db))

	var hash string
	require.NoError(t, db.QueryRow(
		"SELECT password_hash FROM admins WHERE username = ?", DefaultAdminUsername,
	).Scan(&hash))

	password := models.Password{Hash: hash}

	match, err := password.Matches(DefaultAdminPassword)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = password.Matches("wrong-password")
	require.NoError(t, err)
	assert.False(t, match)
}
