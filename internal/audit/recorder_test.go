package audit

import (
	"context"
	"testing"

	"devis_backend/internal/events"
	"devis_backend/platform/logger"

	"github.com/google/uuid"
)

type capturedEntry struct {
	businessID   uuid.UUID
	actorID      *uuid.UUID
	action       string
	level        string
	resourceType string
	metadata     map[string]any
}

type captureStore struct {
	entries []capturedEntry
}

func (s *captureStore) Record(_ context.Context, businessID uuid.UUID, actorID *uuid.UUID, action, level, resourceType string, metadata map[string]any) error {
	s.entries = append(s.entries, capturedEntry{
		businessID:   businessID,
		actorID:      actorID,
		action:       action,
		level:        level,
		resourceType: resourceType,
		metadata:     metadata,
	})
	return nil
}

func TestRecorder_RecordsFollowUpDue(t *testing.T) {
	store := &captureStore{}
	bus := events.NewInMemoryBus(logger.New("test"))
	NewRecorder(store, logger.New("test")).Subscribe(bus)

	businessID := uuid.New()
	err := bus.PublishSync(context.Background(), events.QuoteFollowUpDue{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     uuid.New(),
		BusinessID:  businessID,
		QuoteNumber: "DEVIS-2025-003",
		ClientEmail: "marie@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(store.entries))
	}
	entry := store.entries[0]
	if entry.action != ActionQuoteFollowUp {
		t.Fatalf("expected action %s, got %s", ActionQuoteFollowUp, entry.action)
	}
	if entry.businessID != businessID {
		t.Fatalf("expected business %s, got %s", businessID, entry.businessID)
	}
	if entry.actorID != nil {
		t.Fatalf("expected no actor for a worker-originated entry, got %v", entry.actorID)
	}
	if entry.metadata["quoteNumber"] != "DEVIS-2025-003" {
		t.Fatalf("expected quote number in metadata, got %v", entry.metadata["quoteNumber"])
	}
}

func TestRecorder_CoversAllPublishedEvents(t *testing.T) {
	store := &captureStore{}
	bus := events.NewInMemoryBus(logger.New("test"))
	NewRecorder(store, logger.New("test")).Subscribe(bus)

	businessID := uuid.New()
	actorID := uuid.New()
	published := []events.Event{
		events.BusinessRegistered{BaseEvent: events.NewBaseEvent(), BusinessID: businessID, UserID: actorID, Email: "owner@example.com"},
		events.QuoteCreated{BaseEvent: events.NewBaseEvent(), BusinessID: businessID, QuoteID: uuid.New(), QuoteNumber: "DEVIS-2025-001", ActorID: actorID},
		events.QuoteSent{BaseEvent: events.NewBaseEvent(), BusinessID: businessID, QuoteID: uuid.New(), QuoteNumber: "DEVIS-2025-001", ActorID: actorID},
		events.QuoteStatusChanged{BaseEvent: events.NewBaseEvent(), BusinessID: businessID, QuoteNumber: "DEVIS-2025-001", OldStatus: "SENT", NewStatus: "ACCEPTED", ActorID: actorID},
		events.QuoteDeleted{BaseEvent: events.NewBaseEvent(), BusinessID: businessID, QuoteID: uuid.New(), QuoteNumber: "DEVIS-2025-001", ActorID: actorID},
		events.QuotesExported{BaseEvent: events.NewBaseEvent(), BusinessID: businessID, QuoteCount: 2, ItemCount: 5, Format: "csv", ActorID: actorID},
	}
	for _, event := range published {
		if err := bus.PublishSync(context.Background(), event); err != nil {
			t.Fatalf("publish %s: %v", event.EventName(), err)
		}
	}

	if len(store.entries) != len(published) {
		t.Fatalf("expected %d audit entries, got %d", len(published), len(store.entries))
	}

	want := []string{
		ActionBusinessRegistered,
		ActionQuoteCreated,
		ActionQuoteSent,
		ActionQuoteDecided,
		ActionQuoteDeleted,
		ActionQuotesExport,
	}
	for i, action := range want {
		if store.entries[i].action != action {
			t.Fatalf("entry %d: expected action %s, got %s", i, action, store.entries[i].action)
		}
		if store.entries[i].level != LevelInfo {
			t.Fatalf("entry %d: expected level %s, got %s", i, LevelInfo, store.entries[i].level)
		}
	}
}

func TestRecorder_WriteFailureIsSwallowed(t *testing.T) {
	bus := events.NewInMemoryBus(logger.New("test"))
	NewRecorder(&failingStore{}, logger.New("test")).Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.QuoteSent{
		BaseEvent:  events.NewBaseEvent(),
		BusinessID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("audit write failure must not propagate, got %v", err)
	}
}

type failingStore struct{}

func (s *failingStore) Record(context.Context, uuid.UUID, *uuid.UUID, string, string, string, map[string]any) error {
	return context.DeadlineExceeded
}
