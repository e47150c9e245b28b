package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"text/template"

	"ecommerce-rbac/pkg/utils"

	"go.uber.org/zap"
)

// Sender delivers the account lifecycle emails.
type Sender interface {
	SendOTP(ctx context.Context, to, name, code string) error
	SendPasswordReset(ctx context.Context, to, name, link string) error
}

var (
	otpTemplate = template.Must(template.New("otp").Parse(
		`Hi {{.Name}},

Your verification code is {{.Code}}. It expires in {{.Minutes}} minutes.
`))

	resetTemplate = template.Must(template.New("reset").Parse(
		`Hi {{.Name}},

Use the link below to choose a new password. It can be used once.

{{.Link}}
`))
)

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type SMTPSender struct {
	config     utils.EmailConfig
	otpMinutes int
	configured bool
	send       sendFunc
	log        *zap.Logger
}

// NewSMTPSender logs messages instead of sending them when no SMTP host or
// sender address is configured.
func NewSMTPSender(config utils.EmailConfig, otpMinutes int, log *zap.Logger) *SMTPSender {
	return &SMTPSender{
		config:     config,
		otpMinutes: otpMinutes,
		configured: config.Host != "" && config.From != "",
		send:       smtp.SendMail,
		log:        log.With(zap.String("component", "mailer")),
	}
}

func (s *SMTPSender) IsConfigured() bool {
	return s.configured
}

func (s *SMTPSender) SendOTP(ctx context.Context, to, name, code string) error {
	data := map[string]any{"Name": name, "Code": code, "Minutes": s.otpMinutes}
	if !s.configured {
		s.log.Info("SMTP not configured, OTP not mailed",
			zap.String("to", to),
			zap.String("otp", code),
		)
		return nil
	}
	return s.deliver(ctx, to, "Verify your email", otpTemplate, data)
}

func (s *SMTPSender) SendPasswordReset(ctx context.Context, to, name, link string) error {
	data := map[string]any{"Name": name, "Link": link}
	if !s.configured {
		s.log.Info("SMTP not configured, reset link not mailed",
			zap.String("to", to),
			zap.String("link", link),
		)
		return nil
	}
	return s.deliver(ctx, to, "Reset your password", resetTemplate, data)
}

func (s *SMTPSender) deliver(ctx context.Context, to, subject string, tpl *template.Template, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := tpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render %s email: %w", tpl.Name(), err)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.config.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.Write(body.Bytes())

	port := s.config.Port
	if port == 0 {
		port = 587
	}
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(port))

	var auth smtp.Auth
	if s.config.User != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	if err := s.send(addr, auth, s.config.From, []string{to}, []byte(msg.String())); err != nil {
		s.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return fmt.Errorf("send %s email: %w", tpl.Name(), err)
	}

	s.log.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
