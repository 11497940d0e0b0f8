package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContactInput defines the JSON input for the public contact form.
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SendContactEmail is the handler for POST /api/contact
// Delivery failures are logged with detail but reported to the visitor as
// a generic error; SMTP configuration never leaks into a response.
func (h *Handlers) SendContactEmail(c *gin.Context) {
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if h.Mailer == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email configuration not set"})
		return
	}

	phone := input.Phone
	if phone == "" {
		phone = "Not provided"
	}

	subject := fmt.Sprintf("Website Inquiry: %s", input.Subject)
	body := fmt.Sprintf(`New contact form submission from the Exceed Auto website:

Name: %s
Email: %s
Phone: %s
Subject: %s

Message:
%s

---
This email was sent from the Exceed Auto website contact form.
`, input.Name, input.Email, phone, input.Subject, input.Message)

	if err := h.Mailer.Send(subject, body); err != nil {
		log.Printf("Email error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}
