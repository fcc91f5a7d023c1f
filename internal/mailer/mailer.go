// Package mailer dispatches confirmation codes out-of-band. The SMTP
// implementation is used in production; the log implementation keeps local
// development free of a mail server.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendConfirmationCode(ctx context.Context, to, code string) error
}

const (
	subject = "ReviewHub account activation"
)

// SMTPMailer sends codes through an SMTP relay via gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendConfirmationCode(_ context.Context, to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", "confirmation_code: "+code)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

// LogMailer writes the code to the log instead of sending it.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendConfirmationCode(_ context.Context, to, code string) error {
	m.logger.Info("confirmation code issued", "to", to, "code", code)
	return nil
}
