package catalog

import (
	"database/sql"
	"errors"
	"io"

	"github.com/exceedauto/exceedauto-api/internal/models"
)

// Sentinel errors translated to HTTP statuses at the handler boundary.
var (
	ErrNotFound      = errors.New("record not found")
	ErrBrandRequired = errors.New("brand is required")
)

// ConflictError is returned when a brand name already exists. It carries
// the surviving brand so the caller can recover without a second lookup.
type ConflictError struct {
	Brand *models.Brand
}

func (e *ConflictError) Error() string {
	return "brand already exists"
}

// FileStore is the content store holding uploaded images, keyed by
// filename. Delete is idempotent.
type FileStore interface {
	Save(key string, r io.Reader) error
	Delete(key string) error
	URL(key string) string
}

// ImageUpload is one incoming image file, decoupled from multipart.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// Store is the catalog of brands, cars and car images. All relational
// invariants (brand uniqueness, cascade deletes, orphan-brand cleanup)
// live here; handlers only coerce input and shape responses.
type Store struct {
	DB    *sql.DB
	Files FileStore
}

func New(db *sql.DB, files FileStore) *Store {
	return &Store{DB: db, Files: files}
}
