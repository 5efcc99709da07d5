// Package repository provides tenant-scoped persistence for quotes.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"devis_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Quote lifecycle states.
const (
	StatusDraft    = "DRAFT"
	StatusSent     = "SENT"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// Quote is a row in the quotes table. Monetary fields are snapshots taken at
// pricing time; catalogue changes never alter them.
type Quote struct {
	ID                    uuid.UUID       `db:"id"`
	BusinessID            uuid.UUID       `db:"business_id"`
	ClientID              uuid.UUID       `db:"client_id"`
	QuoteNumber           string          `db:"quote_number"`
	Status                string          `db:"status"`
	Subtotal              decimal.Decimal `db:"subtotal"`
	PackageDiscountsTotal decimal.Decimal `db:"package_discounts_total"`
	DiscountType          string          `db:"discount_type"`
	DiscountValue         decimal.Decimal `db:"discount_value"`
	DiscountAmount        decimal.Decimal `db:"discount_amount"`
	Total                 decimal.Decimal `db:"total"`
	ValidUntil            *time.Time      `db:"valid_until"`
	Notes                 *string         `db:"notes"`
	SentAt                *time.Time      `db:"sent_at"`
	CreatedAt             time.Time       `db:"created_at"`
	UpdatedAt             time.Time       `db:"updated_at"`

	// Joined from clients for display.
	ClientFirstName string `db:"client_first_name"`
	ClientLastName  string `db:"client_last_name"`
	ClientEmail     string `db:"client_email"`

	Items []QuoteItem
}

// QuoteItem is a priced line snapshot in the quote_items table.
type QuoteItem struct {
	ID              uuid.UUID       `db:"id"`
	QuoteID         uuid.UUID       `db:"quote_id"`
	Name            string          `db:"name"`
	Description     *string         `db:"description"`
	UnitPrice       decimal.Decimal `db:"unit_price"`
	Quantity        int             `db:"quantity"`
	LineTotal       decimal.Decimal `db:"line_total"`
	PackageDiscount decimal.Decimal `db:"package_discount"`
	ServiceID       *uuid.UUID      `db:"service_id"`
	PackageID       *uuid.UUID      `db:"package_id"`
	SortOrder       int             `db:"sort_order"`
}

// ListParams controls quote listing.
type ListParams struct {
	Status    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ListResult is a page of quotes with the total count.
type ListResult struct {
	Quotes []Quote
	Total  int
}

// Repository provides quote persistence. Every query is scoped by business_id.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateWithItems assigns the next quote number and inserts the quote and its
// items in one transaction. The business row is locked for the duration so
// concurrent creates serialize on the number sequence; the unique constraint
// on (business_id, quote_number) backstops the lock.
func (r *Repository) CreateWithItems(ctx context.Context, businessID uuid.UUID, prefix string, q *Quote, items []QuoteItem) (*Quote, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM businesses WHERE id = $1 FOR UPDATE`, businessID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("business not found")
		}
		return nil, err
	}

	var latest string
	err = tx.QueryRow(ctx, `
		SELECT quote_number FROM quotes
		WHERE business_id = $1
		ORDER BY created_at DESC, quote_number DESC
		LIMIT 1
	`, businessID).Scan(&latest)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	number, err := NextQuoteNumber(prefix, time.Now(), latest)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to assign quote number", err)
	}
	q.QuoteNumber = number
	q.Status = StatusDraft

	err = tx.QueryRow(ctx, `
		INSERT INTO quotes (
			business_id, client_id, quote_number, status,
			subtotal, package_discounts_total, discount_type, discount_value, discount_amount, total,
			valid_until, notes
		)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8::numeric, $9::numeric, $10::numeric, $11, $12)
		RETURNING id, created_at, updated_at
	`, businessID, q.ClientID, q.QuoteNumber, q.Status,
		q.Subtotal.String(), q.PackageDiscountsTotal.String(), q.DiscountType,
		q.DiscountValue.String(), q.DiscountAmount.String(), q.Total.String(),
		q.ValidUntil, q.Notes).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("quote number already assigned, retry")
		}
		return nil, err
	}
	q.BusinessID = businessID

	if err := insertItems(ctx, tx, businessID, q.ID, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetWithItems(ctx, businessID, q.ID)
}

// GetWithItems fetches a quote and its items.
func (r *Repository) GetWithItems(ctx context.Context, businessID, quoteID uuid.UUID) (*Quote, error) {
	q, err := r.get(ctx, businessID, quoteID)
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, businessID, quoteID)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return q, nil
}

// List returns a page of quotes, optionally filtered by status and a search
// term matching the quote number or client name.
func (r *Repository) List(ctx context.Context, businessID uuid.UUID, params ListParams) (*ListResult, error) {
	whereClauses := []string{"q.business_id = $1"}
	args := []interface{}{businessID}
	argIdx := 2

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("q.status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(q.quote_number ILIKE $%d OR c.first_name ILIKE $%d OR c.last_name ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	where := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM quotes q JOIN clients c ON c.id = q.client_id WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	offset := (params.Page - 1) * params.PageSize
	query := fmt.Sprintf(`
		SELECT %s
		FROM quotes q
		JOIN clients c ON c.id = q.client_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, quoteColumns, where, resolveSortBy(params.SortBy), resolveSortOrder(params.SortOrder), argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ListResult{Quotes: quotes, Total: total}, nil
}

// UpdateWithItems replaces a draft quote's content and item set atomically.
// The status guard in the WHERE clause makes the draft-only rule hold even
// under concurrent sends.
func (r *Repository) UpdateWithItems(ctx context.Context, businessID uuid.UUID, q *Quote, items []QuoteItem) (*Quote, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE quotes SET
			client_id = $3,
			subtotal = $4::numeric,
			package_discounts_total = $5::numeric,
			discount_type = $6,
			discount_value = $7::numeric,
			discount_amount = $8::numeric,
			total = $9::numeric,
			valid_until = $10,
			notes = $11,
			updated_at = now()
		WHERE id = $1 AND business_id = $2 AND status = $12
	`, q.ID, businessID, q.ClientID,
		q.Subtotal.String(), q.PackageDiscountsTotal.String(), q.DiscountType,
		q.DiscountValue.String(), q.DiscountAmount.String(), q.Total.String(),
		q.ValidUntil, q.Notes, StatusDraft)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.InvalidState("only draft quotes can be edited")
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM quote_items WHERE quote_id = $1 AND business_id = $2
	`, q.ID, businessID); err != nil {
		return nil, err
	}
	if err := insertItems(ctx, tx, businessID, q.ID, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetWithItems(ctx, businessID, q.ID)
}

// MarkSent transitions a draft quote to SENT. Returns InvalidState when the
// quote is not in DRAFT anymore.
func (r *Repository) MarkSent(ctx context.Context, businessID, quoteID uuid.UUID, sentAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE quotes SET status = $3, sent_at = $4, updated_at = now()
		WHERE id = $1 AND business_id = $2 AND status = $5
	`, quoteID, businessID, StatusSent, sentAt, StatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.InvalidState("only draft quotes can be sent")
	}
	return nil
}

// UpdateStatus transitions a sent quote to ACCEPTED or REJECTED.
func (r *Repository) UpdateStatus(ctx context.Context, businessID, quoteID uuid.UUID, newStatus string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE quotes SET status = $3, updated_at = now()
		WHERE id = $1 AND business_id = $2 AND status = $4
	`, quoteID, businessID, newStatus, StatusSent)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.InvalidState("only sent quotes can be accepted or rejected")
	}
	return nil
}

// Delete removes a quote and its items (cascade).
func (r *Repository) Delete(ctx context.Context, businessID, quoteID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM quotes WHERE id = $1 AND business_id = $2
	`, quoteID, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("quote not found")
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

const quoteColumns = `
	q.id, q.business_id, q.client_id, q.quote_number, q.status,
	q.subtotal::text, q.package_discounts_total::text, q.discount_type,
	q.discount_value::text, q.discount_amount::text, q.total::text,
	q.valid_until, q.notes, q.sent_at, q.created_at, q.updated_at,
	c.first_name, c.last_name, c.email`

func (r *Repository) get(ctx context.Context, businessID, quoteID uuid.UUID) (*Quote, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM quotes q
		JOIN clients c ON c.id = q.client_id
		WHERE q.id = $1 AND q.business_id = $2
	`, quoteColumns), quoteID, businessID)

	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("quote not found")
		}
		return nil, err
	}
	return q, nil
}

func (r *Repository) loadItems(ctx context.Context, businessID, quoteID uuid.UUID) ([]QuoteItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, quote_id, name, description, unit_price::text, quantity,
			line_total::text, package_discount::text, service_id, package_id, sort_order
		FROM quote_items
		WHERE quote_id = $1 AND business_id = $2
		ORDER BY sort_order ASC
	`, quoteID, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]QuoteItem, 0)
	for rows.Next() {
		var item QuoteItem
		var unitPrice, lineTotal, packageDiscount string
		if err := rows.Scan(&item.ID, &item.QuoteID, &item.Name, &item.Description, &unitPrice, &item.Quantity,
			&lineTotal, &packageDiscount, &item.ServiceID, &item.PackageID, &item.SortOrder); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, err
		}
		if item.LineTotal, err = decimal.NewFromString(lineTotal); err != nil {
			return nil, err
		}
		if item.PackageDiscount, err = decimal.NewFromString(packageDiscount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func insertItems(ctx context.Context, tx pgx.Tx, businessID, quoteID uuid.UUID, items []QuoteItem) error {
	for i, item := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO quote_items (
				quote_id, business_id, name, description, unit_price, quantity,
				line_total, package_discount, service_id, package_id, sort_order
			)
			VALUES ($1, $2, $3, $4, $5::numeric, $6, $7::numeric, $8::numeric, $9, $10, $11)
		`, quoteID, businessID, item.Name, item.Description, item.UnitPrice.String(), item.Quantity,
			item.LineTotal.String(), item.PackageDiscount.String(), item.ServiceID, item.PackageID, i); err != nil {
			return err
		}
	}
	return nil
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	var subtotal, packageDiscounts, discountValue, discountAmount, total string
	err := row.Scan(&q.ID, &q.BusinessID, &q.ClientID, &q.QuoteNumber, &q.Status,
		&subtotal, &packageDiscounts, &q.DiscountType, &discountValue, &discountAmount, &total,
		&q.ValidUntil, &q.Notes, &q.SentAt, &q.CreatedAt, &q.UpdatedAt,
		&q.ClientFirstName, &q.ClientLastName, &q.ClientEmail)
	if err != nil {
		return nil, err
	}
	if q.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, err
	}
	if q.PackageDiscountsTotal, err = decimal.NewFromString(packageDiscounts); err != nil {
		return nil, err
	}
	if q.DiscountValue, err = decimal.NewFromString(discountValue); err != nil {
		return nil, err
	}
	if q.DiscountAmount, err = decimal.NewFromString(discountAmount); err != nil {
		return nil, err
	}
	if q.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	return &q, nil
}

func resolveSortBy(sortBy string) string {
	switch sortBy {
	case "total":
		return "q.total"
	case "quoteNumber":
		return "q.quote_number"
	case "status":
		return "q.status"
	case "updatedAt":
		return "q.updated_at"
	default:
		return "q.created_at"
	}
}

func resolveSortOrder(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}
