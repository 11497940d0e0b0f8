package catalog

import (
	"database/sql"
	"time"

	"github.com/exceedauto/exceedauto-api/internal/models"
)

// ListBrands returns every brand with its live car count.
func (s *Store) ListBrands() ([]*models.Brand, error) {
	query := `
		SELECT b.id, b.name, b.created_at, COUNT(c.id)
		FROM brands b
		LEFT JOIN cars c ON c.brand_id = b.id
		GROUP BY b.id, b.name, b.created_at
		ORDER BY b.id ASC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := []*models.Brand{}
	for rows.Next() {
		var brand models.Brand
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.CreatedAt, &brand.CarCount); err != nil {
			return nil, err
		}
		brands = append(brands, &brand)
	}
	return brands, rows.Err()
}

// GetBrand returns a single brand with its car count.
func (s *Store) GetBrand(id int64) (*models.Brand, error) {
	query := `
		SELECT b.id, b.name, b.created_at, COUNT(c.id)
		FROM brands b
		LEFT JOIN cars c ON c.brand_id = b.id
		WHERE b.id = ?
		GROUP BY b.id, b.name, b.created_at`

	var brand models.Brand
	err := s.DB.QueryRow(query, id).Scan(&brand.ID, &brand.Name, &brand.CreatedAt, &brand.CarCount)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// CreateBrand inserts a brand, relying on the UNIQUE index on name to
// arbitrate races: when the insert fails and a brand with that name
// exists, the survivor is returned inside a ConflictError. A plain
// check-then-insert would let two concurrent creates both succeed.
func (s *Store) CreateBrand(name string) (*models.Brand, error) {
	brand := &models.Brand{
		Name:      name,
		CreatedAt: time.Now(),
	}

	result, err := s.DB.Exec(
		"INSERT INTO brands (name, created_at) VALUES (?, ?)",
		brand.Name, brand.CreatedAt,
	)
	if err != nil {
		existing, lookupErr := s.findBrandByName(name)
		if lookupErr == nil {
			return nil, &ConflictError{Brand: existing}
		}
		return nil, err
	}

	brand.ID, err = result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *Store) findBrandByName(name string) (*models.Brand, error) {
	query := `
		SELECT b.id, b.name, b.created_at, COUNT(c.id)
		FROM brands b
		LEFT JOIN cars c ON c.brand_id = b.id
		WHERE b.name = ?
		GROUP BY b.id, b.name, b.created_at`

	var brand models.Brand
	err := s.DB.QueryRow(query, name).Scan(&brand.ID, &brand.Name, &brand.CreatedAt, &brand.CarCount)
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// DeleteBrand cascades: every car of the brand, every image of those cars
// (row and stored file), then the brand row, all in one transaction.
// Files are removed after the commit so a rollback never loses content.
func (s *Store) DeleteBrand(id int64) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT 1 FROM brands WHERE id = ?", id).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	filenames, err := collectFilenames(tx, `
		SELECT ci.filename
		FROM car_images ci
		JOIN cars c ON c.id = ci.car_id
		WHERE c.brand_id = ?`, id)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		"DELETE FROM car_images WHERE car_id IN (SELECT id FROM cars WHERE brand_id = ?)", id,
	); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM cars WHERE brand_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM brands WHERE id = ?", id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.deleteFiles(filenames)
	return nil
}

// findOrCreateBrandByName resolves a brand by exact name inside the
// caller's transaction, creating it when absent. A concurrent create can
// still slip in between the lookup and the insert, so an insert failure
// falls back to one more lookup.
func findOrCreateBrandByName(tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM brands WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	result, err := tx.Exec("INSERT INTO brands (name, created_at) VALUES (?, ?)", name, time.Now())
	if err != nil {
		if retryErr := tx.QueryRow("SELECT id FROM brands WHERE name = ?", name).Scan(&id); retryErr == nil {
			return id, nil
		}
		return 0, err
	}
	return result.LastInsertId()
}

// CleanupOrphanBrands deletes every brand that currently owns zero cars.
// Runs after car deletes and updates; car creation can never empty a
// brand, so it skips the sweep.
func (s *Store) CleanupOrphanBrands() error {
	_, err := s.DB.Exec(
		"DELETE FROM brands WHERE NOT EXISTS (SELECT 1 FROM cars WHERE cars.brand_id = brands.id)",
	)
	return err
}

func collectFilenames(tx *sql.Tx, query string, args ...interface{}) ([]string, error) {
	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var filenames []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		filenames = append(filenames, name)
	}
	return filenames, rows.Err()
}

func (s *Store) deleteFiles(filenames []string) {
	for _, name := range filenames {
		// Best effort: the rows are already gone and Delete is idempotent.
		_ = s.Files.Delete(name)
	}
}
