// Package mailer sends account verification emails over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP connection settings. A zero Host disables sending.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends verification mail. It is safe to use with an empty
// configuration, in which case sends are silently skipped.
type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &Mailer{cfg: cfg}
}

// Enabled reports whether the mailer has a configured SMTP host.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// SendVerification emails the verification link to a new user.
func (m *Mailer) SendVerification(to, verifyURL string) error {
	if !m.Enabled() {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your Nyaya account")
	msg.SetBody("text/html", fmt.Sprintf(`
		<p>Welcome to Nyaya.</p>
		<p>Click the link below to verify your email address. The link is valid for 24 hours.</p>
		<p><a href="%s">Verify my account</a></p>
		<p>If you did not create this account, you can ignore this email.</p>
	`, verifyURL))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}
