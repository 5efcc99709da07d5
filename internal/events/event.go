// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"devis_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// BusinessRegistered is published when a new business and owner account are created.
type BusinessRegistered struct {
	BaseEvent
	BusinessID uuid.UUID `json:"businessId"`
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email"`
}

func (e BusinessRegistered) EventName() string { return "auth.business.registered" }

// =============================================================================
// Quotes Domain Events
// =============================================================================

// QuoteCreated is published when a quote is created.
type QuoteCreated struct {
	BaseEvent
	QuoteID     uuid.UUID `json:"quoteId"`
	BusinessID  uuid.UUID `json:"businessId"`
	ClientID    uuid.UUID `json:"clientId"`
	QuoteNumber string    `json:"quoteNumber"`
	ActorID     uuid.UUID `json:"actorId"`
}

func (e QuoteCreated) EventName() string { return "quotes.quote.created" }

// QuoteSent is published when a quote is sent to the client.
type QuoteSent struct {
	BaseEvent
	QuoteID     uuid.UUID `json:"quoteId"`
	BusinessID  uuid.UUID `json:"businessId"`
	ClientID    uuid.UUID `json:"clientId"`
	QuoteNumber string    `json:"quoteNumber"`
	ClientEmail string    `json:"clientEmail"`
	ActorID     uuid.UUID `json:"actorId"`
}

func (e QuoteSent) EventName() string { return "quotes.quote.sent" }

// QuoteStatusChanged is published when a sent quote is accepted or rejected.
type QuoteStatusChanged struct {
	BaseEvent
	QuoteID     uuid.UUID `json:"quoteId"`
	BusinessID  uuid.UUID `json:"businessId"`
	QuoteNumber string    `json:"quoteNumber"`
	OldStatus   string    `json:"oldStatus"`
	NewStatus   string    `json:"newStatus"`
	ActorID     uuid.UUID `json:"actorId"`
}

func (e QuoteStatusChanged) EventName() string { return "quotes.quote.status_changed" }

// QuoteDeleted is published when a quote is deleted.
type QuoteDeleted struct {
	BaseEvent
	QuoteID     uuid.UUID `json:"quoteId"`
	BusinessID  uuid.UUID `json:"businessId"`
	QuoteNumber string    `json:"quoteNumber"`
	ActorID     uuid.UUID `json:"actorId"`
}

func (e QuoteDeleted) EventName() string { return "quotes.quote.deleted" }

// =============================================================================
// Exports Domain Events
// =============================================================================

// QuotesExported is published after a successful CSV export containing at
// least one quote.
type QuotesExported struct {
	BaseEvent
	BusinessID uuid.UUID `json:"businessId"`
	QuoteCount int       `json:"quoteCount"`
	ItemCount  int       `json:"itemCount"`
	Format     string    `json:"format"`
	ActorID    uuid.UUID `json:"actorId"`
}

func (e QuotesExported) EventName() string { return "exports.quotes.exported" }

// =============================================================================
// Scheduler Domain Events
// =============================================================================

// QuoteFollowUpDue is published by the worker when a follow-up reminder fires
// for a quote that is still awaiting a response.
type QuoteFollowUpDue struct {
	BaseEvent
	QuoteID     uuid.UUID `json:"quoteId"`
	BusinessID  uuid.UUID `json:"businessId"`
	QuoteNumber string    `json:"quoteNumber"`
	ClientEmail string    `json:"clientEmail"`
}

func (e QuoteFollowUpDue) EventName() string { return "scheduler.quote.follow_up_due" }
