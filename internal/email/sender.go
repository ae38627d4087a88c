package email

import (
	"planr_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail (welcome messages, subscription
// receipts). Delivery is always best-effort: callers log failures and
// never fail the request over them.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends through the configured SMTP relay via gomail.
type SMTPSender struct {
	cfg *config.Config
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Email.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		s.cfg.Email.SMTPHost,
		s.cfg.Email.SMTPPort,
		s.cfg.Email.SMTPUsername,
		s.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

// NoopSender is used when email is disabled (tests, local dev).
type NoopSender struct{}

func (NoopSender) Send(to, subject, body string) error { return nil }
