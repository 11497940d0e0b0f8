package models

import "time"

// Brand defines the struct for the 'brands' table.
// CarCount is computed from the cars table on every read, never stored.
// A brand with zero cars is transient: the orphan cleanup that runs after
// car deletes/updates removes it.
type Brand struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CarCount  int       `json:"car_count" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
