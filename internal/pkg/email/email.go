package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Notifier sends informational account emails
type Notifier interface {
	SendRegistrationEmail(ctx context.Context, toEmail, toName string) error
	SendLoginEmail(ctx context.Context, toEmail, toName string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// Message is a rendered plain-text email
type Message struct {
	To      string
	Subject string
	Body    string
}

type sendFunc func(cfg SMTPConfig, msg Message) error

// SMTPNotifier implements Notifier over SMTP
type SMTPNotifier struct {
	config SMTPConfig
	logger zerolog.Logger
	send   sendFunc
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		config: config,
		logger: logger,
		send:   sendPlainEmail,
	}
}

// SendRegistrationEmail welcomes a newly registered user
func (s *SMTPNotifier) SendRegistrationEmail(ctx context.Context, toEmail, toName string) error {
	return s.deliver(ctx, Message{
		To:      toEmail,
		Subject: "Library Registration Successful",
		Body:    fmt.Sprintf("Hello %s,\n\nWelcome to the Library System! Your registration was successful.", toName),
	})
}

// SendLoginEmail tells a user that their account was just used to log in
func (s *SMTPNotifier) SendLoginEmail(ctx context.Context, toEmail, toName string) error {
	return s.deliver(ctx, Message{
		To:      toEmail,
		Subject: "Library Login Notification",
		Body:    fmt.Sprintf("Hello %s,\n\nYou have successfully logged in to the Library System.", toName),
	})
}

func (s *SMTPNotifier) deliver(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Development mode: no server configured
	if s.config.Host == "" {
		s.logger.Warn().
			Str("toEmail", msg.To).
			Str("subject", msg.Subject).
			Msg("SMTP host not configured - email not sent")
		return nil
	}

	if err := s.send(s.config, msg); err != nil {
		s.logger.Error().Err(err).Str("toEmail", msg.To).Str("subject", msg.Subject).Msg("Failed to send email")
		return err
	}

	s.logger.Debug().Str("toEmail", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}

func buildMessage(cfg SMTPConfig, msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", cfg.FromName, cfg.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

func sendPlainEmail(cfg SMTPConfig, msg Message) error {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	serverAddress := cfg.Host + ":" + strconv.Itoa(cfg.Port)
	body := buildMessage(cfg, msg)

	if !cfg.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, cfg.FromEmail, []string{msg.To}, body); err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: cfg.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err = client.Mail(cfg.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
