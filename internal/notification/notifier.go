// Package notification bridges quote lifecycle events to email delivery.
package notification

import (
	"context"

	"devis_backend/internal/email"
	quotesvc "devis_backend/internal/quotes/service"
	"devis_backend/platform/logger"
)

// QuoteNotifier delivers quote emails synchronously through the configured
// sender. Delivery failure is reported to the caller so the quote stays in
// DRAFT when the client never received it.
type QuoteNotifier struct {
	sender email.Sender
	log    *logger.Logger
}

// NewQuoteNotifier creates a notifier on top of an email sender.
func NewQuoteNotifier(sender email.Sender, log *logger.Logger) *QuoteNotifier {
	return &QuoteNotifier{sender: sender, log: log}
}

// NotifyQuoteSent emails the quote to the client.
func (n *QuoteNotifier) NotifyQuoteSent(ctx context.Context, notif quotesvc.QuoteNotification) error {
	err := n.sender.SendQuoteEmail(ctx, notif.ClientEmail, email.QuoteSentEmail{
		QuoteNumber:  notif.QuoteNumber,
		BusinessName: notif.BusinessName,
		ClientName:   notif.ClientName,
		Total:        notif.Total,
		ValidUntil:   notif.ValidUntil,
	})
	if err != nil {
		n.log.Error("quote email delivery failed",
			"quote_number", notif.QuoteNumber, "error", err)
		return err
	}

	n.log.Info("quote email delivered",
		"quote_number", notif.QuoteNumber, "to", notif.ClientEmail)
	return nil
}

var _ quotesvc.Notifier = (*QuoteNotifier)(nil)
