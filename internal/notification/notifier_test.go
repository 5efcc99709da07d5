package notification

import (
	"context"
	"errors"
	"testing"

	"devis_backend/internal/email"
	quotesvc "devis_backend/internal/quotes/service"
	"devis_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type captureSender struct {
	lastTo   string
	lastData email.QuoteSentEmail
	err      error
}

func (s *captureSender) SendQuoteEmail(_ context.Context, toEmail string, data email.QuoteSentEmail) error {
	s.lastTo = toEmail
	s.lastData = data
	return s.err
}

func (s *captureSender) SendFollowUpEmail(context.Context, string, email.FollowUpEmail) error {
	return nil
}

func TestNotifyQuoteSent_DeliversToClient(t *testing.T) {
	sender := &captureSender{}
	notifier := NewQuoteNotifier(sender, logger.New("test"))

	err := notifier.NotifyQuoteSent(context.Background(), quotesvc.QuoteNotification{
		QuoteID:      uuid.New(),
		QuoteNumber:  "DEVIS-2025-001",
		BusinessName: "Atelier Martin",
		ClientName:   "Marie Dupont",
		ClientEmail:  "marie@example.com",
		Total:        decimal.New(15200, -2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.lastTo != "marie@example.com" {
		t.Fatalf("expected delivery to marie@example.com, got %s", sender.lastTo)
	}
	if sender.lastData.QuoteNumber != "DEVIS-2025-001" {
		t.Fatalf("expected quote number in email data, got %s", sender.lastData.QuoteNumber)
	}
}

func TestNotifyQuoteSent_PropagatesDeliveryFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp down")}
	notifier := NewQuoteNotifier(sender, logger.New("test"))

	err := notifier.NotifyQuoteSent(context.Background(), quotesvc.QuoteNotification{
		QuoteNumber: "DEVIS-2025-001",
		ClientEmail: "marie@example.com",
	})
	if err == nil {
		t.Fatal("expected delivery failure to propagate")
	}
}
