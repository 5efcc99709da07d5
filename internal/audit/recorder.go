package audit

import (
	"context"

	"devis_backend/internal/events"
	"devis_backend/platform/logger"

	"github.com/google/uuid"
)

// Audit actions.
const (
	ActionBusinessRegistered = "business.registered"
	ActionQuoteCreated       = "quote.created"
	ActionQuoteSent          = "quote.sent"
	ActionQuoteDecided       = "quote.status_changed"
	ActionQuoteDeleted       = "quote.deleted"
	ActionQuoteFollowUp      = "quote.follow_up_due"
	ActionQuotesExport       = "quotes.exported"
)

// entryStore persists audit entries. Satisfied by *Repository.
type entryStore interface {
	Record(ctx context.Context, businessID uuid.UUID, actorID *uuid.UUID, action, level, resourceType string, metadata map[string]any) error
}

var _ entryStore = (*Repository)(nil)

// Recorder subscribes to domain events and appends audit entries for them.
// Recording is best-effort: a failed write is logged and never propagated to
// the operation that raised the event.
type Recorder struct {
	repo entryStore
	log  *logger.Logger
}

// NewRecorder creates an audit recorder.
func NewRecorder(repo entryStore, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Subscribe registers the recorder on the event bus. Both the API process and
// the follow-up worker subscribe a recorder on their own bus.
func (r *Recorder) Subscribe(bus events.Bus) {
	bus.Subscribe(events.BusinessRegistered{}.EventName(), events.HandlerFunc(r.onBusinessRegistered))
	bus.Subscribe(events.QuoteCreated{}.EventName(), events.HandlerFunc(r.onQuoteCreated))
	bus.Subscribe(events.QuoteSent{}.EventName(), events.HandlerFunc(r.onQuoteSent))
	bus.Subscribe(events.QuoteStatusChanged{}.EventName(), events.HandlerFunc(r.onQuoteStatusChanged))
	bus.Subscribe(events.QuoteDeleted{}.EventName(), events.HandlerFunc(r.onQuoteDeleted))
	bus.Subscribe(events.QuoteFollowUpDue{}.EventName(), events.HandlerFunc(r.onQuoteFollowUpDue))
	bus.Subscribe(events.QuotesExported{}.EventName(), events.HandlerFunc(r.onQuotesExported))
}

func (r *Recorder) onBusinessRegistered(ctx context.Context, event events.Event) error {
	e, ok := event.(events.BusinessRegistered)
	if !ok {
		return nil
	}
	r.record(ctx, e.BusinessID, e.UserID, ActionBusinessRegistered, "business", map[string]any{
		"userId": e.UserID,
		"email":  e.Email,
	})
	return nil
}

func (r *Recorder) onQuoteCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.QuoteCreated)
	if !ok {
		return nil
	}
	r.record(ctx, e.BusinessID, e.ActorID, ActionQuoteCreated, "quote", map[string]any{
		"quoteId":     e.QuoteID,
		"quoteNumber": e.QuoteNumber,
		"clientId":    e.ClientID,
	})
	return nil
}

func (r *Recorder) onQuoteSent(ctx context.Context, event events.Event) error {
	e, ok := event.(events.QuoteSent)
	if !ok {
		return nil
	}
	r.record(ctx, e.BusinessID, e.ActorID, ActionQuoteSent, "quote", map[string]any{
		"quoteId":     e.QuoteID,
		"quoteNumber": e.QuoteNumber,
		"clientEmail": e.ClientEmail,
	})
	return nil
}

func (r *Recorder) onQuoteStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.QuoteStatusChanged)
	if !ok {
		return nil
	}
	r.record(ctx, e.BusinessID, e.ActorID, ActionQuoteDecided, "quote", map[string]any{
		"quoteId":     e.QuoteID,
		"quoteNumber": e.QuoteNumber,
		"oldStatus":   e.OldStatus,
		"newStatus":   e.NewStatus,
	})
	return nil
}

func (r *Recorder) onQuoteDeleted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.QuoteDeleted)
	if !ok {
		return nil
	}
	r.record(ctx, e.BusinessID, e.ActorID, ActionQuoteDeleted, "quote", map[string]any{
		"quoteId":     e.QuoteID,
		"quoteNumber": e.QuoteNumber,
	})
	return nil
}

// onQuoteFollowUpDue has no actor: the reminder fires from the worker, not
// from a user action.
func (r *Recorder) onQuoteFollowUpDue(ctx context.Context, event events.Event) error {
	e, ok := event.(events.QuoteFollowUpDue)
	if !ok {
		return nil
	}
	r.record(ctx, e.BusinessID, uuid.Nil, ActionQuoteFollowUp, "quote", map[string]any{
		"quoteId":     e.QuoteID,
		"quoteNumber": e.QuoteNumber,
		"clientEmail": e.ClientEmail,
	})
	return nil
}

func (r *Recorder) onQuotesExported(ctx context.Context, event events.Event) error {
	e, ok := event.(events.QuotesExported)
	if !ok {
		return nil
	}
	r.record(ctx, e.BusinessID, e.ActorID, ActionQuotesExport, "export", map[string]any{
		"quoteCount": e.QuoteCount,
		"itemCount":  e.ItemCount,
		"format":     e.Format,
	})
	return nil
}

func (r *Recorder) record(ctx context.Context, businessID, actorID uuid.UUID, action, resourceType string, metadata map[string]any) {
	var actor *uuid.UUID
	if actorID != uuid.Nil {
		actor = &actorID
	}
	if err := r.repo.Record(ctx, businessID, actor, action, LevelInfo, resourceType, metadata); err != nil {
		r.log.Error("audit record failed", "action", action, "business_id", businessID, "error", err)
	}
}
