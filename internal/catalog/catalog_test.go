package catalog

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/exceedauto/exceedauto-api/internal/storage"
)

// The store runs against MySQL in production; tests use an in-process
// sqlite database with an equivalent schema. Every query in the store
// sticks to portable SQL so both dialects accept it.
const testSchema = `
CREATE TABLE brands (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE cars (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	brand_id INTEGER NOT NULL REFERENCES brands(id),
	model TEXT NOT NULL,
	year INTEGER NOT NULL,
	price REAL NOT NULL,
	mileage INTEGER,
	fuel_type TEXT,
	transmission TEXT,
	body_type TEXT,
	color TEXT,
	engine TEXT,
	description TEXT,
	featured BOOLEAN NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE car_images (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	car_id INTEGER NOT NULL REFERENCES cars(id),
	filename TEXT NOT NULL,
	is_primary BOOLEAN NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
);
`

func newTestStore(t *testing.T) (*Store, *storage.LocalStore) {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "catalog_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// The store serializes writers through transactions; a single
	// connection keeps sqlite from returning busy errors under that load.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	files, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	return New(db, files), files
}

func upload(name string) ImageUpload {
	return ImageUpload{Filename: name, Reader: strings.NewReader("not-really-a-" + name)}
}

func strPtr(v string) *string     { return &v }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64     { return &v }
