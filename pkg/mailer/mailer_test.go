package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"ecommerce-rbac/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newCapturingSender(t *testing.T, config utils.EmailConfig) (*SMTPSender, *[]capturedMail) {
	t.Helper()

	var sent []capturedMail
	sender := NewSMTPSender(config, 10, zap.NewNop())
	sender.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, capturedMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return sender, &sent
}

func TestSMTPSender_SendOTP(t *testing.T) {
	sender, sent := newCapturingSender(t, utils.EmailConfig{
		Host: "smtp.example.com",
		Port: 2525,
		From: "shop@example.com",
	})

	err := sender.SendOTP(context.Background(), "v@x.com", "V", "123456")
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	mail := (*sent)[0]
	assert.Equal(t, "smtp.example.com:2525", mail.addr)
	assert.Equal(t, "shop@example.com", mail.from)
	assert.Equal(t, []string{"v@x.com"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: Verify your email")
	assert.Contains(t, mail.msg, "Your verification code is 123456")
	assert.Contains(t, mail.msg, "10 minutes")
}

func TestSMTPSender_SendPasswordResetDefaultsPort(t *testing.T) {
	sender, sent := newCapturingSender(t, utils.EmailConfig{
		Host: "smtp.example.com",
		From: "shop@example.com",
	})

	link := "http://localhost:3000/reset-password/abc/token"
	require.NoError(t, sender.SendPasswordReset(context.Background(), "c@x.com", "C", link))
	require.Len(t, *sent, 1)
	assert.Equal(t, "smtp.example.com:587", (*sent)[0].addr)
	assert.Contains(t, (*sent)[0].msg, link)
}

func TestSMTPSender_Unconfigured(t *testing.T) {
	sender, sent := newCapturingSender(t, utils.EmailConfig{})

	assert.False(t, sender.IsConfigured())
	require.NoError(t, sender.SendOTP(context.Background(), "v@x.com", "V", "123456"))
	assert.Empty(t, *sent)
}

func TestSMTPSender_DeliveryFailure(t *testing.T) {
	sender := NewSMTPSender(utils.EmailConfig{Host: "smtp.example.com", From: "shop@example.com"}, 10, zap.NewNop())
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := sender.SendOTP(context.Background(), "v@x.com", "V", "123456")
	assert.ErrorContains(t, err, "connection refused")
}
