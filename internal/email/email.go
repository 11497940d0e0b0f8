package email

import (
	"errors"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers outbound notification mail. Handlers only see this
// interface so tests can swap in a stub.
type Mailer interface {
	Send(subject, body string) error
}

// ErrNotConfigured is returned when the SMTP environment is incomplete.
var ErrNotConfigured = errors.New("email configuration not set")

// SMTPMailer sends mail over SMTP with implicit TLS (port 465).
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	to       string
}

// NewSMTPMailerFromEnv builds a mailer from SMTP_HOST, SMTP_PORT,
// SMTP_USERNAME, SMTP_PASSWORD and CONTACT_RECIPIENT. Returns
// ErrNotConfigured when any required variable is missing so the caller
// can decide whether to run without outbound mail.
func NewSMTPMailerFromEnv() (*SMTPMailer, error) {
	m := &SMTPMailer{
		host:     os.Getenv("SMTP_HOST"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		to:       os.Getenv("CONTACT_RECIPIENT"),
		port:     465,
	}
	if p := os.Getenv("SMTP_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		m.port = port
	}
	if m.host == "" || m.username == "" || m.password == "" || m.to == "" {
		return nil, ErrNotConfigured
	}
	return m, nil
}

func (m *SMTPMailer) Send(subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.username)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	d.SSL = m.port == 465

	return d.DialAndSend(msg)
}
