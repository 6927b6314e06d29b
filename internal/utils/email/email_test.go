package email

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/Dan9191/usuarios-service/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSender() *Sender {
	log, _ := test.NewNullLogger()
	cfg := &config.Config{
		SMTPHost:    "smtp.example.com",
		SMTPPort:    "587",
		SenderEmail: "noreply@example.com",
	}
	return NewSender(cfg, log)
}

func TestSendWelcome(t *testing.T) {
	s := newTestSender()

	var sent *email.Email
	var sentAddr string
	s.send = func(e *email.Email, addr string, _ smtp.Auth) error {
		sent, sentAddr = e, addr
		return nil
	}

	require.NoError(t, s.SendWelcome("a@x.com", "Ana"))
	require.NotNil(t, sent)
	assert.Equal(t, "smtp.example.com:587", sentAddr)
	assert.Equal(t, "noreply@example.com", sent.From)
	assert.Equal(t, []string{"a@x.com"}, sent.To)
	assert.Contains(t, string(sent.Text), "Olá Ana")
}

func TestSendWelcome_SMTPError(t *testing.T) {
	s := newTestSender()
	s.send = func(*email.Email, string, smtp.Auth) error {
		return errors.New("connection refused")
	}

	err := s.SendWelcome("a@x.com", "Ana")
	assert.ErrorContains(t, err, "connection refused")
}

func TestSendWelcome_EmptyRecipient(t *testing.T) {
	s := newTestSender()
	called := false
	s.send = func(*email.Email, string, smtp.Auth) error {
		called = true
		return nil
	}

	assert.Error(t, s.SendWelcome("", "Ana"))
	assert.False(t, called)
}
