package utils

import (
	"crypto/tls"
	"errors"
	"net/smtp"
	"os"
	"strings"

	"github.com/jordan-wright/email"
)

// SMTPMailer sends mail through the SMTP server configured in the
// environment (SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM).
type SMTPMailer struct{}

// NewSMTPMailer creates an SMTP mailer.
func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

// Send delivers one HTML message.
func (m *SMTPMailer) Send(to, subject, html string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	if host == "" || port == "" || user == "" || pass == "" || from == "" {
		return errors.New("smtp config missing")
	}

	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(html)

	addr := host + ":" + port
	auth := smtp.PlainAuth("", user, pass, host)
	tlsConfig := &tls.Config{ServerName: host}
	useTLS := strings.EqualFold(os.Getenv("SMTP_TLS"), "true") ||
		os.Getenv("SMTP_TLS") == "1" ||
		port == "465"
	useStartTLS := strings.EqualFold(os.Getenv("SMTP_STARTTLS"), "true") ||
		os.Getenv("SMTP_STARTTLS") == "1"

	if useTLS {
		return e.SendWithTLS(addr, auth, tlsConfig)
	}
	if useStartTLS {
		return e.SendWithStartTLS(addr, auth, tlsConfig)
	}
	return e.Send(addr, auth)
}

// ActivateMailHTML builds the account activation message body.
func ActivateMailHTML(link string) string {
	return `
		<h2>Welcome</h2>
		<p>Please click the link below to activate your account:</p>
		<a href="` + link + `">Activate account</a>
		<p>The link is valid for 10 minutes.</p>
	`
}

// ViewLinkMailHTML builds the magic view-link message body.
func ViewLinkMailHTML(fileName, link string) string {
	return `
		<h2>A document was shared with you</h2>
		<p>Click the link below to open <b>` + fileName + `</b>:</p>
		<a href="` + link + `">Open document</a>
		<p>The link can be used once and expires shortly.</p>
	`
}
