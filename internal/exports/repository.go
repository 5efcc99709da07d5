// Package exports flattens quotes and line items into CSV for download.
package exports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ExportQuote is the read model for one quote row group in the CSV.
type ExportQuote struct {
	ID              uuid.UUID
	QuoteNumber     string
	Status          string
	ClientFirstName string
	ClientLastName  string
	ClientEmail     string
	Subtotal        decimal.Decimal
	DiscountType    string
	DiscountValue   decimal.Decimal
	Total           decimal.Decimal
	ValidUntil      *time.Time
	SentAt          *time.Time
	Notes           *string
	CreatedAt       time.Time
	Items           []ExportItem
}

// ExportItem is the read model for one line item row in the CSV.
type ExportItem struct {
	Name            string
	Description     *string
	UnitPrice       decimal.Decimal
	Quantity        int
	LineTotal       decimal.Decimal
	PackageDiscount *decimal.Decimal
}

// Repository provides read-only access to quote data for exports.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new export repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// BusinessLocale returns the display locale configured for the business.
func (r *Repository) BusinessLocale(ctx context.Context, businessID uuid.UUID) (string, error) {
	var locale string
	err := r.pool.QueryRow(ctx, `
		SELECT display_locale FROM businesses WHERE id = $1
	`, businessID).Scan(&locale)
	if err != nil {
		return "", fmt.Errorf("load business locale: %w", err)
	}
	return locale, nil
}

// ListQuotesWithItems returns every quote of the business with its line
// items, ordered oldest first so the CSV reads chronologically.
func (r *Repository) ListQuotesWithItems(ctx context.Context, businessID uuid.UUID) ([]ExportQuote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT q.id, q.quote_number, q.status,
			c.first_name, c.last_name, c.email,
			q.subtotal::text, q.discount_type, q.discount_value::text, q.total::text,
			q.valid_until, q.sent_at, q.notes, q.created_at
		FROM quotes q
		JOIN clients c ON c.id = q.client_id AND c.business_id = q.business_id
		WHERE q.business_id = $1
		ORDER BY q.created_at ASC, q.quote_number ASC
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list quotes for export: %w", err)
	}
	defer rows.Close()

	quotes := make([]ExportQuote, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var q ExportQuote
		var subtotal, discountValue, total string
		if err := rows.Scan(
			&q.ID, &q.QuoteNumber, &q.Status,
			&q.ClientFirstName, &q.ClientLastName, &q.ClientEmail,
			&subtotal, &q.DiscountType, &discountValue, &total,
			&q.ValidUntil, &q.SentAt, &q.Notes, &q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan export quote: %w", err)
		}
		if q.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("parse subtotal: %w", err)
		}
		if q.DiscountValue, err = decimal.NewFromString(discountValue); err != nil {
			return nil, fmt.Errorf("parse discount value: %w", err)
		}
		if q.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total: %w", err)
		}
		index[q.ID] = len(quotes)
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return quotes, nil
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT i.quote_id, i.name, i.description,
			i.unit_price::text, i.quantity, i.line_total::text, i.package_discount::text
		FROM quote_items i
		JOIN quotes q ON q.id = i.quote_id
		WHERE q.business_id = $1
		ORDER BY i.quote_id, i.sort_order ASC
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list quote items for export: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var quoteID uuid.UUID
		var item ExportItem
		var unitPrice, lineTotal string
		var packageDiscount *string
		if err := itemRows.Scan(&quoteID, &item.Name, &item.Description,
			&unitPrice, &item.Quantity, &lineTotal, &packageDiscount); err != nil {
			return nil, fmt.Errorf("scan export item: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parse unit price: %w", err)
		}
		if item.LineTotal, err = decimal.NewFromString(lineTotal); err != nil {
			return nil, fmt.Errorf("parse line total: %w", err)
		}
		if packageDiscount != nil {
			d, err := decimal.NewFromString(*packageDiscount)
			if err != nil {
				return nil, fmt.Errorf("parse package discount: %w", err)
			}
			item.PackageDiscount = &d
		}
		if i, ok := index[quoteID]; ok {
			quotes[i].Items = append(quotes[i].Items, item)
		}
	}
	return quotes, itemRows.Err()
}
