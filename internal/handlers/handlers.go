package handlers

import (
	"database/sql"

	"github.com/exceedauto/exceedauto-api/internal/auth"
	"github.com/exceedauto/exceedauto-api/internal/catalog"
	"github.com/exceedauto/exceedauto-api/internal/email"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB       *sql.DB        // admins table (login)
	Catalog  *catalog.Store // brands, cars, images
	Sessions *auth.Registry // bearer tokens for the admin dashboard
	Mailer   email.Mailer   // contact form delivery; nil when SMTP is not configured
}
