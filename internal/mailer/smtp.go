package mailer

import (
	"context"

	"github.com/google/uuid"
	mail "gopkg.in/mail.v2"

	"github.com/spec-kit/dispatch-service/internal/config"
)

// SMTPMailer delivers messages through an SMTP relay.
type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

// NewSMTPMailer builds a mailer from SMTP settings.
func NewSMTPMailer(cfg config.SMTPConfig, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// Send dials the relay and submits the message. The context bounds the
// whole dial-and-send exchange.
func (s *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", err
		}
		return uuid.NewString(), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
