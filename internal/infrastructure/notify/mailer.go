package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/infrastructure/config"
)

// SMTPNotifier sends order notifications as plain text mail
type SMTPNotifier struct {
	cfg config.SMTPConfig
}

func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

func (n *SMTPNotifier) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		n.cfg.From, to, subject, body)

	var auth smtp.Auth
	if n.cfg.User != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}

	if err := smtp.SendMail(n.cfg.Addr(), auth, n.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// LogNotifier writes notifications to the log instead of sending them.
// Used in development and when no SMTP host is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, to, subject, body string) error {
	n.logger.Info("notification",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
