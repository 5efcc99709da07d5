package service

import (
	"context"
	"time"

	"devis_backend/internal/quotes/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStore is the persistence surface the lifecycle drives. Mutations
// enforce the status rules: content edits and sending require DRAFT,
// decisions require SENT, and violations surface as InvalidState errors.
type QuoteStore interface {
	CreateWithItems(ctx context.Context, businessID uuid.UUID, prefix string, q *repository.Quote, items []repository.QuoteItem) (*repository.Quote, error)
	GetWithItems(ctx context.Context, businessID, quoteID uuid.UUID) (*repository.Quote, error)
	List(ctx context.Context, businessID uuid.UUID, params repository.ListParams) (*repository.ListResult, error)
	UpdateWithItems(ctx context.Context, businessID uuid.UUID, q *repository.Quote, items []repository.QuoteItem) (*repository.Quote, error)
	MarkSent(ctx context.Context, businessID, quoteID uuid.UUID, sentAt time.Time) error
	UpdateStatus(ctx context.Context, businessID, quoteID uuid.UUID, newStatus string) error
	Delete(ctx context.Context, businessID, quoteID uuid.UUID) error
}

var _ QuoteStore = (*repository.Repository)(nil)

// CatalogService is the catalogue view the pricing flow needs.
type CatalogService struct {
	ID          uuid.UUID
	Name        string
	Description string
	UnitPrice   decimal.Decimal
}

// CatalogPackagePart is one service entry of a package with its current price.
type CatalogPackagePart struct {
	ServiceID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// CatalogPackage is the catalogue view of a package at pricing time.
type CatalogPackage struct {
	ID            uuid.UUID
	Name          string
	Description   string
	DiscountType  string
	DiscountValue decimal.Decimal
	Parts         []CatalogPackagePart
}

// CatalogReader resolves active catalogue entries for the business.
// Implementations return a NotFound error for unknown, inactive, or
// cross-tenant references.
type CatalogReader interface {
	ServiceByID(ctx context.Context, businessID, serviceID uuid.UUID) (*CatalogService, error)
	PackageByID(ctx context.Context, businessID, packageID uuid.UUID) (*CatalogPackage, error)
}

// ClientContact is the client view needed for validation and notification.
type ClientContact struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// BusinessProfile is the tenant view needed for numbering and notification.
type BusinessProfile struct {
	ID          uuid.UUID
	Name        string
	Email       string
	QuotePrefix string
}

// ContactReader resolves clients and the business profile.
type ContactReader interface {
	ClientByID(ctx context.Context, businessID, clientID uuid.UUID) (*ClientContact, error)
	BusinessByID(ctx context.Context, businessID uuid.UUID) (*BusinessProfile, error)
}

// QuoteNotification carries everything the notifier needs to email a client.
type QuoteNotification struct {
	QuoteID      uuid.UUID
	QuoteNumber  string
	BusinessName string
	ClientName   string
	ClientEmail  string
	Total        decimal.Decimal
	ValidUntil   *time.Time
}

// Notifier delivers the quote to the client. Sending is all-or-nothing for
// the SENT transition: an error here keeps the quote in DRAFT.
type Notifier interface {
	NotifyQuoteSent(ctx context.Context, n QuoteNotification) error
}

// FollowUpScheduler enqueues a reminder for a sent quote.
type FollowUpScheduler interface {
	ScheduleQuoteFollowUp(quoteID, businessID uuid.UUID, dueAt time.Time) error
}
