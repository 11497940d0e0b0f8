package catalog

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/exceedauto/exceedauto-api/internal/models"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

func allowedImage(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// storageKey builds the content-store key for an upload:
// "<carID>_<uniqueness token>_<sanitized original name>". The uuid keeps
// two uploads of the same file from colliding; the slug strips anything
// the client put in the name that does not belong in a key.
func storageKey(carID int64, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	return fmt.Sprintf("%d_%s_%s%s", carID, uuid.New().String(), slug.Make(base), ext)
}

// attachImages stores each allowed upload and records it inside the
// caller's transaction. With markPrimary, the first entry of the list is
// flagged primary even when it turns out to be skippable (that mirrors
// how creation has always behaved: a rejected first file means the car
// ends up with no primary image).
// Returns the stored keys so the caller can undo them on rollback.
func (s *Store) attachImages(tx *sql.Tx, carID int64, images []ImageUpload, markPrimary bool) ([]string, error) {
	var saved []string
	for i, img := range images {
		if img.Reader == nil || !allowedImage(img.Filename) {
			continue
		}

		key := storageKey(carID, img.Filename)
		if err := s.Files.Save(key, img.Reader); err != nil {
			return saved, err
		}
		saved = append(saved, key)

		isPrimary := markPrimary && i == 0
		if _, err := tx.Exec(
			"INSERT INTO car_images (car_id, filename, is_primary, created_at) VALUES (?, ?, ?, ?)",
			carID, key, isPrimary, time.Now(),
		); err != nil {
			return saved, err
		}
	}
	return saved, nil
}

func (s *Store) loadImages(car *models.Car) error {
	rows, err := s.DB.Query(
		"SELECT id, car_id, filename, is_primary, created_at FROM car_images WHERE car_id = ? ORDER BY id ASC",
		car.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	car.Images = []*models.CarImage{}
	for rows.Next() {
		var img models.CarImage
		if err := rows.Scan(&img.ID, &img.CarID, &img.Filename, &img.IsPrimary, &img.CreatedAt); err != nil {
			return err
		}
		img.URL = s.Files.URL(img.Filename)
		car.Images = append(car.Images, &img)
	}
	return rows.Err()
}

// DeleteCarImage removes one image record and its stored file. The car id
// is part of the match so an image can only be deleted through its owner.
// No other image is promoted to primary when the primary one is deleted;
// the car simply has none afterwards.
func (s *Store) DeleteCarImage(carID, imageID int64) error {
	var filename string
	err := s.DB.QueryRow(
		"SELECT filename FROM car_images WHERE id = ? AND car_id = ?",
		imageID, carID,
	).Scan(&filename)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := s.DB.Exec("DELETE FROM car_images WHERE id = ? AND car_id = ?", imageID, carID); err != nil {
		return err
	}

	return s.Files.Delete(filename)
}
