package storage

import (
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps uploaded images on the local filesystem, keyed by
// filename. Keys never contain path separators (the catalog derives them
// from sanitized names), but Delete and path() take filepath.Base anyway.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if it does not exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the root directory, used by the router to serve files.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes the content under the given key, replacing any existing file.
func (s *LocalStore) Save(key string, r io.Reader) error {
	out, err := os.Create(s.path(key))
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return err
	}
	return nil
}

// Delete removes the file for the key. Deleting a missing key is not an
// error: cascade deletes may race with manual cleanup.
func (s *LocalStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether a file is stored under the key.
func (s *LocalStore) Exists(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// URL returns the public path the router serves the key under.
func (s *LocalStore) URL(key string) string {
	return "/api/uploads/" + key
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}
