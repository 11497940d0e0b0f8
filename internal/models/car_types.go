package models

import "time"

// Car Model with Pointers for Nullable Fields
type Car struct {
	ID      int64   `json:"id" db:"id"`
	BrandID int64   `json:"brand_id" db:"brand_id"`
	Model   string  `json:"model" db:"model"`
	Year    int     `json:"year" db:"year"`
	Price   float64 `json:"price" db:"price"`

	// BrandName is resolved from the brands table when the car is read.
	BrandName string `json:"brand_name" db:"-"`

	// --- Optional Fields (Pointers = Clean JSON) ---
	Mileage      *int    `json:"mileage" db:"mileage"`
	FuelType     *string `json:"fuel_type" db:"fuel_type"`
	Transmission *string `json:"transmission" db:"transmission"`
	BodyType     *string `json:"body_type" db:"body_type"`
	Color        *string `json:"color" db:"color"`
	Engine       *string `json:"engine" db:"engine"`
	Description  *string `json:"description" db:"description"`

	Featured  bool      `json:"featured" db:"featured"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Images []*CarImage `json:"images" db:"-"`
}

// CarImage defines the struct for the 'car_images' table.
// Filename is the content-store key; URL is derived at read time.
// IsPrimary is set only once, for the first image uploaded with a new car.
type CarImage struct {
	ID        int64     `json:"id" db:"id"`
	CarID     int64     `json:"car_id" db:"car_id"`
	Filename  string    `json:"filename" db:"filename"`
	URL       string    `json:"url" db:"-"`
	IsPrimary bool      `json:"is_primary" db:"is_primary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
