// Package mailer delivers outbound notification mail. Delivery failures
// surface to callers so partially applied state (e.g. a stored reset
// token) can be rolled back.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Mailer sends password-reset mail carrying the one-time plaintext token
// link.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
}

// SMTPMailer delivers through a configured SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTP builds an SMTP mailer. auth may be nil for open relays.
func NewSMTP(addr, from, username, password, host string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{addr: addr, from: from, auth: auth}
}

func (m *SMTPMailer) SendPasswordReset(_ context.Context, to, name, resetURL string) error {
	body := fmt.Sprintf("From: leadsdesk <%s>\r\n"+
		"To: %s\r\n"+
		"Subject: Password Reset\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"<p>Hello <b>%s</b>,</p>"+
		"<p>You requested a password reset. Follow the link below; it expires in 1 hour.</p>"+
		"<p><a href=%q>Reset Password</a></p>"+
		"<p>If you did not request this, ignore this email.</p>\r\n",
		m.from, to, name, resetURL)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// LogMailer logs reset links instead of sending mail. Used when SMTP is
// not configured (development setups).
type LogMailer struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, name, resetURL string) error {
	m.log.Info("password reset link (smtp disabled)",
		zap.String("to", to),
		zap.String("name", name),
		zap.String("url", resetURL),
	)
	return nil
}
