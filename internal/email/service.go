// Package email sends verification code emails over SMTP with a pooled
// connection.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"sync"
	"time"

	"wordvault/internal/config"
	"wordvault/internal/models"
)

var otpTemplate = template.Must(template.New("otp").Parse(`
	<h2>Hello {{.Name}},</h2>
	<p>Your verification code is:</p>
	<h1 style="letter-spacing: 4px;">{{.Code}}</h1>
	<p>This code expires in {{.ExpiresIn}} minutes and can only be used once.</p>
	<p>If you did not request this code, you can safely ignore this email.</p>
`))

func subjectFor(purpose models.OtpPurpose) string {
	switch purpose {
	case models.OtpPurposeRegister:
		return "Registration Verification Code"
	case models.OtpPurposePasswordReset:
		return "Password Reset Verification Code"
	default:
		return "Login Verification Code"
	}
}

// Service sends emails over SMTP, reusing one connection across sends.
type Service struct {
	config config.EmailConfig
	client *smtp.Client
	mu     sync.Mutex
}

func NewService(cfg config.EmailConfig) *Service {
	return &Service{config: cfg}
}

// dialSMTP establishes an SMTP connection, reusing a live one when possible.
func (s *Service) dialSMTP() (*smtp.Client, error) {
	if s.client != nil {
		if err := s.client.Noop(); err == nil {
			return s.client, nil
		}
		s.client.Close()
		s.client = nil
	}

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	if s.config.SMTPUsername != "" {
		if err := client.Auth(smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to authenticate with SMTP server: %w", err)
		}
	}

	s.client = client
	return client, nil
}

func (s *Service) sendMail(to string, msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.dialSMTP()
	if err != nil {
		return err
	}

	if err := client.Mail(s.config.FromAddress); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to add recipient %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to create message writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message writer: %w", err)
	}
	return nil
}

// Close closes the pooled SMTP connection.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		err := s.client.Quit()
		s.client = nil
		return err
	}
	return nil
}

// SendOtpEmail sends a one-time verification code. The subject reflects why
// the code was issued so the recipient can tell an unexpected login prompt
// from their own registration.
func (s *Service) SendOtpEmail(ctx context.Context, to, name, code string, purpose models.OtpPurpose, expiresIn time.Duration) error {
	if s.config.SMTPHost == "" || s.config.SMTPPort == 0 || s.config.FromAddress == "" {
		return fmt.Errorf("incomplete email configuration")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, map[string]any{
		"Name":      name,
		"Code":      code,
		"ExpiresIn": int(expiresIn.Minutes()),
	}); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s", to, s.config.FromAddress, subjectFor(purpose), body.String())

	if err := s.sendMail(to, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send verification code email: %w", err)
	}
	return nil
}
