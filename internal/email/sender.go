// Package email delivers transactional mail for the quote lifecycle.
package email

import (
	"context"
	"time"

	"devis_backend/platform/config"
	"devis_backend/platform/logger"

	"github.com/shopspring/decimal"
)

// QuoteSentEmail carries the data rendered into the "quote sent" message.
type QuoteSentEmail struct {
	QuoteNumber  string
	BusinessName string
	ClientName   string
	Total        decimal.Decimal
	ValidUntil   *time.Time
}

// FollowUpEmail carries the data rendered into the follow-up reminder.
type FollowUpEmail struct {
	QuoteNumber  string
	BusinessName string
	ClientName   string
	Total        decimal.Decimal
}

// Sender delivers quote emails to clients.
type Sender interface {
	SendQuoteEmail(ctx context.Context, toEmail string, data QuoteSentEmail) error
	SendFollowUpEmail(ctx context.Context, toEmail string, data FollowUpEmail) error
}

// NewSender returns the SMTP sender when email delivery is configured, and
// the logging no-op sender otherwise.
func NewSender(cfg config.EmailConfig, log *logger.Logger) Sender {
	if !cfg.GetEmailEnabled() {
		return NewNoopSender(log)
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

// NoopSender is used when SMTP delivery is disabled. It logs the message
// instead of sending it and reports success, so the quote lifecycle keeps
// working in environments without a mail server.
type NoopSender struct {
	log *logger.Logger
}

// NewNoopSender creates a logging no-op sender.
func NewNoopSender(log *logger.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) SendQuoteEmail(_ context.Context, toEmail string, data QuoteSentEmail) error {
	s.log.Info("email delivery disabled, skipping quote email",
		"to", toEmail, "quote_number", data.QuoteNumber)
	return nil
}

func (s *NoopSender) SendFollowUpEmail(_ context.Context, toEmail string, data FollowUpEmail) error {
	s.log.Info("email delivery disabled, skipping follow-up email",
		"to", toEmail, "quote_number", data.QuoteNumber)
	return nil
}

var _ Sender = (*NoopSender)(nil)
