package services

import (
	"fmt"

	mail "github.com/go-mail/mail"
	"go.uber.org/zap"
)

// Mailer delivers password-reset tokens to users.
type Mailer interface {
	SendPasswordReset(to, token string) error
}

// SMTPMailer sends over SMTP with go-mail.
type SMTPMailer struct {
	host string
	port int
	from string
	user string
	pass string
}

func NewSMTPMailer(host string, port int, from, user, pass string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from, user: user, pass: pass}
}

func (s *SMTPMailer) SendPasswordReset(to, token string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Réinitialisation de ton mot de passe")
	m.SetBody("text/plain", fmt.Sprintf(
		"Salut,\n\nVoici ton code de réinitialisation : %s\n\n"+
			"Il expire bientôt et ne peut être utilisé qu'une seule fois.\n", token))

	d := mail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogMailer stands in when no SMTP server is configured: the token only lands
// in the logs. Useful for local development.
type LogMailer struct {
	Log *zap.Logger
}

func (l *LogMailer) SendPasswordReset(to, token string) error {
	l.Log.Info("password reset token issued (no SMTP configured)",
		zap.String("to", to), zap.String("token", token))
	return nil
}
