package mail

import (
	"fmt"

	gomailv2 "gopkg.in/gomail.v2"

	"github.com/Meghana-05-02/RFP-System/internal/config"
)

// Sender delivers plain-text mail over SMTP.
type Sender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) Send(to, subject, body string) error {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("EMAIL_HOST_USER and EMAIL_HOST_PASSWORD must be set")
	}

	m := gomailv2.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomailv2.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
