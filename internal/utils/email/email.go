package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/usuarios-service/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendWelcome sends a registration confirmation to a new user
func (s *Sender) SendWelcome(to, name string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	e := s.welcomeMessage(to, name)
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) welcomeMessage(to, name string) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Cadastro realizado"

	body := fmt.Sprintf("Olá %s,\n\n", name)
	body += "Seu cadastro foi realizado com sucesso.\n"
	body += "\nAtenciosamente,\nEquipe Usuários"
	e.Text = []byte(body)
	return e
}
