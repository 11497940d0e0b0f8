package database

import (
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/exceedauto/exceedauto-api/internal/models"
)

// Default credentials created on first startup when the admins table is
// empty. Documented bootstrap behavior: rotate these after the first login.
const (
	DefaultAdminUsername = "admin@autoexceed"
	DefaultAdminPassword = "autoexceed@admin"
)

// OpenDB initializes and returns the database connection pool.
// The DSN is read from the DB_DSN environment variable, with a local
// development fallback.
func OpenDB() (*sql.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(127.0.0.1:3306)/exceedauto?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Printf("Error connecting to database: %v", err)
		return nil, err
	}

	log.Println("Database connection pool established successfully")
	return db, nil
}

// Migrate creates the schema if it does not exist yet. There is no
// versioned migration history; the tables are stable enough that
// CREATE TABLE IF NOT EXISTS covers every deployment we have.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS admins (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(80) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS brands (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS cars (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			brand_id BIGINT NOT NULL,
			model VARCHAR(100) NOT NULL,
			year INT NOT NULL,
			price DOUBLE NOT NULL,
			mileage INT NULL,
			fuel_type VARCHAR(50) NULL,
			transmission VARCHAR(50) NULL,
			body_type VARCHAR(50) NULL,
			color VARCHAR(50) NULL,
			engine VARCHAR(100) NULL,
			description TEXT NULL,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (brand_id) REFERENCES brands(id)
		)`,
		`CREATE TABLE IF NOT EXISTS car_images (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			car_id BIGINT NOT NULL,
			filename VARCHAR(255) NOT NULL,
			is_primary BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (car_id) REFERENCES cars(id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// EnsureAdmin creates the default admin account on first run. It is
// idempotent: once any admin row exists it never inserts another, so
// calling it on every startup is safe.
func EnsureAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var password models.Password
	if err := password.Set(DefaultAdminPassword); err != nil {
		return err
	}

	_, err := db.Exec(
		"INSERT INTO admins (username, password_hash, created_at) VALUES (?, ?, ?)",
		DefaultAdminUsername, password.Hash, time.Now(),
	)
	if err != nil {
		return err
	}

	log.Printf("Default admin created: %s / %s", DefaultAdminUsername, DefaultAdminPassword)
	return nil
}
