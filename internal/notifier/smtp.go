package notifier

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"orderdesk/internal/config"
	"orderdesk/internal/errors"
)

type SMTPNotifier struct {
	addr   string
	host   string
	from   string
	auth   smtp.Auth
	logger *zap.Logger
}

func NewSMTPNotifier(cfg config.SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}

	return &SMTPNotifier{
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		host:   cfg.Host,
		from:   from,
		auth:   auth,
		logger: logger,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	msg := []byte(
		"From: " + n.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	if err := smtp.SendMail(n.addr, n.auth, n.from, []string{to}, msg); err != nil {
		n.logger.Warn("smtp delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return errors.NewDeliveryError(fmt.Sprintf("delivering %q to %s", subject, to), err)
	}

	return nil
}
