package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"devis_backend/internal/events"
	"devis_backend/internal/quotes/repository"
	"devis_backend/internal/quotes/transport"
	"devis_backend/platform/apperr"
	"devis_backend/platform/logger"

	"github.com/google/uuid"
)

// fakeQuoteStore holds a single quote and mirrors the repository's status
// guards on mutation.
type fakeQuoteStore struct {
	quote         *repository.Quote
	markSentCalls int
}

func (f *fakeQuoteStore) CreateWithItems(_ context.Context, _ uuid.UUID, _ string, q *repository.Quote, _ []repository.QuoteItem) (*repository.Quote, error) {
	return q, nil
}

func (f *fakeQuoteStore) GetWithItems(_ context.Context, _, _ uuid.UUID) (*repository.Quote, error) {
	if f.quote == nil {
		return nil, apperr.NotFound("quote not found")
	}
	return f.quote, nil
}

func (f *fakeQuoteStore) List(_ context.Context, _ uuid.UUID, _ repository.ListParams) (*repository.ListResult, error) {
	return &repository.ListResult{}, nil
}

func (f *fakeQuoteStore) UpdateWithItems(_ context.Context, _ uuid.UUID, q *repository.Quote, _ []repository.QuoteItem) (*repository.Quote, error) {
	if f.quote == nil || f.quote.Status != repository.StatusDraft {
		return nil, apperr.InvalidState("only draft quotes can be edited")
	}
	return q, nil
}

func (f *fakeQuoteStore) MarkSent(_ context.Context, _, _ uuid.UUID, sentAt time.Time) error {
	f.markSentCalls++
	if f.quote == nil || f.quote.Status != repository.StatusDraft {
		return apperr.InvalidState("only draft quotes can be sent")
	}
	f.quote.Status = repository.StatusSent
	f.quote.SentAt = &sentAt
	return nil
}

func (f *fakeQuoteStore) UpdateStatus(_ context.Context, _, _ uuid.UUID, newStatus string) error {
	if f.quote == nil || f.quote.Status != repository.StatusSent {
		return apperr.InvalidState("only sent quotes can be accepted or rejected")
	}
	f.quote.Status = newStatus
	return nil
}

func (f *fakeQuoteStore) Delete(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

type fakeContacts struct{}

func (fakeContacts) ClientByID(_ context.Context, _, clientID uuid.UUID) (*ClientContact, error) {
	return &ClientContact{ID: clientID, Name: "Marie Dupont", Email: "marie@example.com"}, nil
}

func (fakeContacts) BusinessByID(_ context.Context, businessID uuid.UUID) (*BusinessProfile, error) {
	return &BusinessProfile{ID: businessID, Name: "Atelier Martin", QuotePrefix: "DEVIS"}, nil
}

type countingNotifier struct {
	calls int
	err   error
}

func (n *countingNotifier) NotifyQuoteSent(context.Context, QuoteNotification) error {
	n.calls++
	return n.err
}

func storedQuote(status string) *repository.Quote {
	return &repository.Quote{
		ID:              uuid.New(),
		BusinessID:      uuid.New(),
		ClientID:        uuid.New(),
		QuoteNumber:     "DEVIS-2025-001",
		Status:          status,
		ClientFirstName: "Marie",
		ClientLastName:  "Dupont",
		ClientEmail:     "marie@example.com",
	}
}

func newLifecycleService(store *fakeQuoteStore, notifier Notifier) *Service {
	return &Service{
		repo:     store,
		contacts: fakeContacts{},
		notifier: notifier,
		bus:      events.NewInMemoryBus(logger.New("test")),
		log:      logger.New("test"),
	}
}

func TestUpdate_RejectsNonDraftQuote(t *testing.T) {
	for _, status := range []string{repository.StatusSent, repository.StatusAccepted, repository.StatusRejected} {
		store := &fakeQuoteStore{quote: storedQuote(status)}
		svc := newLifecycleService(store, &countingNotifier{})

		_, err := svc.Update(context.Background(), store.quote.BusinessID, store.quote.ID, transport.UpdateQuoteRequest{ClientID: store.quote.ClientID})
		if err == nil {
			t.Fatalf("status %s: expected edit to be rejected", status)
		}
		if apperr.GetKind(err) != apperr.KindInvalidState {
			t.Fatalf("status %s: expected invalid state, got %v", status, err)
		}
	}
}

func TestSend_RejectsNonDraftQuote(t *testing.T) {
	for _, status := range []string{repository.StatusSent, repository.StatusAccepted, repository.StatusRejected} {
		store := &fakeQuoteStore{quote: storedQuote(status)}
		notifier := &countingNotifier{}
		svc := newLifecycleService(store, notifier)

		_, err := svc.Send(context.Background(), store.quote.BusinessID, uuid.New(), store.quote.ID)
		if apperr.GetKind(err) != apperr.KindInvalidState {
			t.Fatalf("status %s: expected invalid state, got %v", status, err)
		}
		if notifier.calls != 0 {
			t.Fatalf("status %s: no email may be sent for a non-draft quote", status)
		}
	}
}

func TestUpdateStatus_RejectsDraftQuote(t *testing.T) {
	store := &fakeQuoteStore{quote: storedQuote(repository.StatusDraft)}
	svc := newLifecycleService(store, &countingNotifier{})

	_, err := svc.UpdateStatus(context.Background(), store.quote.BusinessID, uuid.New(), store.quote.ID, repository.StatusAccepted)
	if apperr.GetKind(err) != apperr.KindInvalidState {
		t.Fatalf("expected invalid state for deciding a draft quote, got %v", err)
	}
	if store.quote.Status != repository.StatusDraft {
		t.Fatalf("quote must stay DRAFT, got %s", store.quote.Status)
	}
}

func TestSend_DeliveryFailureKeepsDraft(t *testing.T) {
	store := &fakeQuoteStore{quote: storedQuote(repository.StatusDraft)}
	notifier := &countingNotifier{err: errors.New("smtp down")}
	svc := newLifecycleService(store, notifier)

	_, err := svc.Send(context.Background(), store.quote.BusinessID, uuid.New(), store.quote.ID)
	if apperr.GetKind(err) != apperr.KindExternal {
		t.Fatalf("expected external error, got %v", err)
	}
	if store.markSentCalls != 0 {
		t.Fatal("quote must not transition when the email is not delivered")
	}
	if store.quote.Status != repository.StatusDraft {
		t.Fatalf("quote must stay DRAFT, got %s", store.quote.Status)
	}
}

func TestSend_TransitionsDraftToSent(t *testing.T) {
	store := &fakeQuoteStore{quote: storedQuote(repository.StatusDraft)}
	notifier := &countingNotifier{}
	svc := newLifecycleService(store, notifier)

	resp, err := svc.Send(context.Background(), store.quote.BusinessID, uuid.New(), store.quote.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.calls != 1 {
		t.Fatalf("expected one delivery, got %d", notifier.calls)
	}
	if resp.Status != repository.StatusSent {
		t.Fatalf("expected SENT, got %s", resp.Status)
	}
	if resp.SentAt == nil {
		t.Fatal("expected sentAt to be set")
	}
}
