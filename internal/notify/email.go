// Package notify delivers the finished digest and report. Senders are
// best-effort with bounded retries; a delivery failure never undoes the
// artifacts already written.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/conowcast/nowcast/internal/logger"
	"github.com/conowcast/nowcast/internal/retry"
)

// SMTPConfig holds the mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// EmailSender sends plain-text digests over SMTP with STARTTLS.
type EmailSender struct {
	config SMTPConfig
}

func NewEmailSender(config SMTPConfig) *EmailSender {
	if config.From == "" {
		config.From = config.Username
	}
	return &EmailSender{config: config}
}

// Send delivers one message, retrying transient failures.
func (e *EmailSender) Send(ctx context.Context, subject, body string) error {
	err := retry.Do(ctx, retry.Config{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true}, func() error {
		return e.sendOnce(subject, body)
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	logger.Info("email sent", "to", strings.Join(e.config.To, ", "), "subject", subject)
	return nil
}

func (e *EmailSender) sendOnce(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	auth := smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)

	msg := buildMessage(e.config.From, e.config.To, subject, body)
	return smtp.SendMail(addr, auth, e.config.From, e.config.To, msg)
}

// buildMessage assembles an RFC 5322 plain-text message with UTF-8
// headers.
func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
