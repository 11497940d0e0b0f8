package catalog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/exceedauto/exceedauto-api/internal/models"
)

// CarFilter is a conjunction of optional predicates. A nil/zero field
// means "no constraint".
type CarFilter struct {
	BrandID      *int64
	BodyType     string
	FuelType     string
	Transmission string
	MinPrice     *float64
	MaxPrice     *float64
	Featured     bool
}

// CreateCarInput carries the coerced fields for a new car. Exactly one of
// BrandID/BrandName must resolve to a brand; a bare name is created on
// demand.
type CreateCarInput struct {
	BrandID   *int64
	BrandName string

	Model string
	Year  int
	Price float64

	Mileage      *int
	FuelType     *string
	Transmission *string
	BodyType     *string
	Color        *string
	Engine       *string
	Description  *string
	Featured     bool
}

// CarPatch is a sparse update: only non-nil fields are applied, so a nil
// field always leaves the stored value untouched.
type CarPatch struct {
	BrandID   *int64
	BrandName string

	Model        *string
	Year         *int
	Price        *float64
	Mileage      *int
	FuelType     *string
	Transmission *string
	BodyType     *string
	Color        *string
	Engine       *string
	Description  *string
	Featured     *bool
}

const carColumns = `
	c.id, c.brand_id, b.name, c.model, c.year, c.price,
	c.mileage, c.fuel_type, c.transmission, c.body_type,
	c.color, c.engine, c.description, c.featured, c.created_at`

// ListCars returns cars matching every set predicate, newest first.
func (s *Store) ListCars(filter CarFilter) ([]*models.Car, error) {
	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT " + carColumns + " FROM cars c JOIN brands b ON b.id = c.brand_id WHERE 1=1")

	if filter.BrandID != nil {
		queryBuilder.WriteString(" AND c.brand_id = ?")
		args = append(args, *filter.BrandID)
	}
	if filter.BodyType != "" {
		queryBuilder.WriteString(" AND c.body_type = ?")
		args = append(args, filter.BodyType)
	}
	if filter.FuelType != "" {
		queryBuilder.WriteString(" AND c.fuel_type = ?")
		args = append(args, filter.FuelType)
	}
	if filter.Transmission != "" {
		queryBuilder.WriteString(" AND c.transmission = ?")
		args = append(args, filter.Transmission)
	}
	if filter.MinPrice != nil {
		queryBuilder.WriteString(" AND c.price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		queryBuilder.WriteString(" AND c.price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if filter.Featured {
		queryBuilder.WriteString(" AND c.featured = ?")
		args = append(args, true)
	}

	queryBuilder.WriteString(" ORDER BY c.created_at DESC, c.id DESC")

	rows, err := s.DB.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []*models.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, car := range cars {
		if err := s.loadImages(car); err != nil {
			return nil, err
		}
	}
	return cars, nil
}

// GetCar returns one car with its brand name and image list.
func (s *Store) GetCar(id int64) (*models.Car, error) {
	row := s.DB.QueryRow(
		"SELECT "+carColumns+" FROM cars c JOIN brands b ON b.id = c.brand_id WHERE c.id = ?", id,
	)

	car, err := scanCar(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadImages(car); err != nil {
		return nil, err
	}
	return car, nil
}

// CreateCar inserts a car and attaches its images in one transaction.
// The first image of the list is marked primary; later uploads never are.
// Stored files are cleaned up again if the transaction fails.
func (s *Store) CreateCar(input CreateCarInput, images []ImageUpload) (*models.Car, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	brandID, err := resolveBrand(tx, input.BrandID, input.BrandName)
	if err != nil {
		return nil, err
	}

	result, err := tx.Exec(`
		INSERT INTO cars
		(brand_id, model, year, price, mileage, fuel_type, transmission,
		 body_type, color, engine, description, featured, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		brandID, input.Model, input.Year, input.Price,
		input.Mileage, input.FuelType, input.Transmission,
		input.BodyType, input.Color, input.Engine, input.Description,
		input.Featured, time.Now(),
	)
	if err != nil {
		return nil, err
	}
	carID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	saved, err := s.attachImages(tx, carID, images, true)
	if err != nil {
		s.deleteFiles(saved)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.deleteFiles(saved)
		return nil, err
	}

	return s.GetCar(carID)
}

// UpdateCar applies a sparse patch and appends any new images, then runs
// the orphan-brand cleanup (the patch may have moved the car away from a
// brand that is now empty).
func (s *Store) UpdateCar(id int64, patch CarPatch, images []ImageUpload) (*models.Car, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var currentBrandID int64
	if err := tx.QueryRow("SELECT brand_id FROM cars WHERE id = ?", id).Scan(&currentBrandID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	querySet := []string{}
	queryArgs := []interface{}{}

	if patch.BrandID != nil || patch.BrandName != "" {
		brandID, err := resolveBrand(tx, patch.BrandID, patch.BrandName)
		if err != nil {
			return nil, err
		}
		querySet = append(querySet, "brand_id = ?")
		queryArgs = append(queryArgs, brandID)
	}
	if patch.Model != nil {
		querySet = append(querySet, "model = ?")
		queryArgs = append(queryArgs, *patch.Model)
	}
	if patch.Year != nil {
		querySet = append(querySet, "year = ?")
		queryArgs = append(queryArgs, *patch.Year)
	}
	if patch.Price != nil {
		querySet = append(querySet, "price = ?")
		queryArgs = append(queryArgs, *patch.Price)
	}
	if patch.Mileage != nil {
		querySet = append(querySet, "mileage = ?")
		queryArgs = append(queryArgs, *patch.Mileage)
	}
	if patch.FuelType != nil {
		querySet = append(querySet, "fuel_type = ?")
		queryArgs = append(queryArgs, *patch.FuelType)
	}
	if patch.Transmission != nil {
		querySet = append(querySet, "transmission = ?")
		queryArgs = append(queryArgs, *patch.Transmission)
	}
	if patch.BodyType != nil {
		querySet = append(querySet, "body_type = ?")
		queryArgs = append(queryArgs, *patch.BodyType)
	}
	if patch.Color != nil {
		querySet = append(querySet, "color = ?")
		queryArgs = append(queryArgs, *patch.Color)
	}
	if patch.Engine != nil {
		querySet = append(querySet, "engine = ?")
		queryArgs = append(queryArgs, *patch.Engine)
	}
	if patch.Description != nil {
		querySet = append(querySet, "description = ?")
		queryArgs = append(queryArgs, *patch.Description)
	}
	if patch.Featured != nil {
		querySet = append(querySet, "featured = ?")
		queryArgs = append(queryArgs, *patch.Featured)
	}

	if len(querySet) > 0 {
		queryArgs = append(queryArgs, id)
		query := fmt.Sprintf("UPDATE cars SET %s WHERE id = ?", strings.Join(querySet, ", "))
		if _, err := tx.Exec(query, queryArgs...); err != nil {
			return nil, err
		}
	}

	saved, err := s.attachImages(tx, id, images, false)
	if err != nil {
		s.deleteFiles(saved)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.deleteFiles(saved)
		return nil, err
	}

	if err := s.CleanupOrphanBrands(); err != nil {
		return nil, err
	}
	return s.GetCar(id)
}

// DeleteCar removes the car, its image rows and stored files in one
// transaction, then sweeps orphan brands.
func (s *Store) DeleteCar(id int64) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT 1 FROM cars WHERE id = ?", id).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	filenames, err := collectFilenames(tx, "SELECT filename FROM car_images WHERE car_id = ?", id)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM car_images WHERE car_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM cars WHERE id = ?", id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.deleteFiles(filenames)
	return s.CleanupOrphanBrands()
}

// resolveBrand turns a brand reference (id or name) into a brand id.
// An explicit id must exist; a name is created on demand.
func resolveBrand(tx *sql.Tx, brandID *int64, brandName string) (int64, error) {
	if brandID != nil {
		var exists int
		if err := tx.QueryRow("SELECT 1 FROM brands WHERE id = ?", *brandID).Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return 0, ErrBrandRequired
			}
			return 0, err
		}
		return *brandID, nil
	}
	if brandName != "" {
		return findOrCreateBrandByName(tx, brandName)
	}
	return 0, ErrBrandRequired
}

func scanCar(row interface{ Scan(...interface{}) error }) (*models.Car, error) {
	var car models.Car
	var mileage sql.NullInt64
	var fuelType, transmission, bodyType, color, engine, description sql.NullString

	err := row.Scan(
		&car.ID,
		&car.BrandID,
		&car.BrandName,
		&car.Model,
		&car.Year,
		&car.Price,
		&mileage,
		&fuelType,
		&transmission,
		&bodyType,
		&color,
		&engine,
		&description,
		&car.Featured,
		&car.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if mileage.Valid {
		val := int(mileage.Int64)
		car.Mileage = &val
	}
	car.FuelType = nullableString(fuelType)
	car.Transmission = nullableString(transmission)
	car.BodyType = nullableString(bodyType)
	car.Color = nullableString(color)
	car.Engine = nullableString(engine)
	car.Description = nullableString(description)
	car.Images = []*models.CarImage{}

	return &car, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	val := ns.String
	return &val
}
