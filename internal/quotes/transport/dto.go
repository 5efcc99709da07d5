// Package transport defines request/response DTOs for the quotes module.
package transport

import (
	"time"

	"devis_backend/platform/money"

	"github.com/google/uuid"
)

// QuoteItemInput is one requested quote line. Exactly one of ServiceID or
// PackageID must be set. For package lines that already exist on the quote,
// submitted price and quantity are ignored in favor of the stored snapshot.
type QuoteItemInput struct {
	ID          *uuid.UUID   `json:"id"`
	ServiceID   *uuid.UUID   `json:"serviceId"`
	PackageID   *uuid.UUID   `json:"packageId"`
	Description *string      `json:"description" binding:"omitempty,max=2000"`
	UnitPrice   *money.Money `json:"unitPrice"`
	Quantity    *int         `json:"quantity" binding:"omitempty,min=1"`
}

// CreateQuoteRequest creates a draft quote.
type CreateQuoteRequest struct {
	ClientID      uuid.UUID        `json:"clientId" binding:"required"`
	Items         []QuoteItemInput `json:"items" binding:"required,min=1,dive"`
	DiscountType  string           `json:"discountType" binding:"omitempty,oneof=NONE PERCENTAGE FIXED"`
	DiscountValue *money.Money     `json:"discountValue"`
	ValidUntil    *time.Time       `json:"validUntil"`
	Notes         *string          `json:"notes" binding:"omitempty,max=5000"`
}

// UpdateQuoteRequest replaces a draft quote's content. The item list is
// authoritative; totals are always recomputed server-side.
type UpdateQuoteRequest struct {
	ClientID      uuid.UUID        `json:"clientId" binding:"required"`
	Items         []QuoteItemInput `json:"items" binding:"required,min=1,dive"`
	DiscountType  string           `json:"discountType" binding:"omitempty,oneof=NONE PERCENTAGE FIXED"`
	DiscountValue *money.Money     `json:"discountValue"`
	ValidUntil    *time.Time       `json:"validUntil"`
	Notes         *string          `json:"notes" binding:"omitempty,max=5000"`
}

// UpdateStatusRequest resolves a sent quote.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
}

// QuoteItemResponse is a priced line snapshot.
type QuoteItemResponse struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	UnitPrice       money.Money `json:"unitPrice"`
	Quantity        int         `json:"quantity"`
	LineTotal       money.Money `json:"lineTotal"`
	PackageDiscount money.Money `json:"packageDiscount"`
	ServiceID       *uuid.UUID  `json:"serviceId,omitempty"`
	PackageID       *uuid.UUID  `json:"packageId,omitempty"`
}

// QuoteResponse is a quote returned to the API consumer.
type QuoteResponse struct {
	ID                    uuid.UUID           `json:"id"`
	QuoteNumber           string              `json:"quoteNumber"`
	Status                string              `json:"status"`
	ClientID              uuid.UUID           `json:"clientId"`
	ClientName            string              `json:"clientName"`
	ClientEmail           string              `json:"clientEmail"`
	Subtotal              money.Money         `json:"subtotal"`
	PackageDiscountsTotal money.Money         `json:"packageDiscountsTotal"`
	DiscountType          string              `json:"discountType"`
	DiscountValue         money.Money         `json:"discountValue"`
	DiscountAmount        money.Money         `json:"discountAmount"`
	Total                 money.Money         `json:"total"`
	ValidUntil            *time.Time          `json:"validUntil,omitempty"`
	Notes                 string              `json:"notes,omitempty"`
	SentAt                *time.Time          `json:"sentAt,omitempty"`
	Items                 []QuoteItemResponse `json:"items"`
	CreatedAt             time.Time           `json:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
}

// ListQuotesResponse is a paginated page of quotes.
type ListQuotesResponse struct {
	Quotes   []QuoteResponse `json:"quotes"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}
