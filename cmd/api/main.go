package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/exceedauto/exceedauto-api/internal/auth"
	"github.com/exceedauto/exceedauto-api/internal/catalog"
	"github.com/exceedauto/exceedauto-api/internal/database"
	"github.com/exceedauto/exceedauto-api/internal/email"
	"github.com/exceedauto/exceedauto-api/internal/handlers"
	"github.com/exceedauto/exceedauto-api/internal/routes"
	"github.com/exceedauto/exceedauto-api/internal/storage"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
	if err := database.EnsureAdmin(db); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// --- Upload Storage ---
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	files, err := storage.NewLocalStore(uploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// --- Contact Form Mailer ---
	// The catalog works without SMTP credentials; only the contact form
	// reports a configuration error in that case.
	var mailer email.Mailer
	if m, err := email.NewSMTPMailerFromEnv(); err == nil {
		mailer = m
	} else if errors.Is(err, email.ErrNotConfigured) {
		log.Println("WARNING: SMTP not configured, contact form delivery disabled.")
	} else {
		log.Fatalf("Invalid SMTP configuration: %v", err)
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		DB:       db,
		Catalog:  catalog.New(db, files),
		Sessions: auth.NewRegistry(),
		Mailer:   mailer,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, files.Dir())

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting Exceed Auto API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
