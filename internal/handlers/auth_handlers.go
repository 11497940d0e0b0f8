package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exceedauto/exceedauto-api/internal/models"
)

// bcrypt hash of an arbitrary string, used to equalize login timing for
// unknown usernames.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// LoginInput defines the JSON input for POST /api/auth/login
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies admin credentials and issues a session token.
// The response for an unknown username and a wrong password is identical,
// so the endpoint never reveals which usernames exist.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}

	var admin models.Admin
	err := h.DB.QueryRow(
		"SELECT id, username, password_hash, created_at FROM admins WHERE username = ?",
		input.Username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			// Burn a comparison anyway so an unknown username costs the
			// same time as a wrong password.
			dummy := models.Password{Hash: dummyHash}
			_, _ = dummy.Matches(input.Password)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	password := models.Password{Hash: admin.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Sessions.Issue(admin.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": admin,
	})
}

// Logout revokes the calling session's token.
func (h *Handlers) Logout(c *gin.Context) {
	token := c.GetString("token")
	h.Sessions.Revoke(token)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// VerifyToken lets the dashboard check a stored token on page load.
// The auth middleware has already done the work by the time we get here.
func (h *Handlers) VerifyToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
