// Package repository provides data access for business profiles.
package repository

import (
	"context"
	"errors"
	"time"

	"devis_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Business is a row in the businesses table.
type Business struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Phone         *string   `db:"phone"`
	Address       *string   `db:"address"`
	DisplayLocale string    `db:"display_locale"`
	QuotePrefix   string    `db:"quote_prefix"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Repository provides business persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new business repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches the business profile.
func (r *Repository) Get(ctx context.Context, businessID uuid.UUID) (*Business, error) {
	var b Business
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, address, display_locale, quote_prefix, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`, businessID).Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Address, &b.DisplayLocale, &b.QuotePrefix, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("business not found")
		}
		return nil, err
	}
	return &b, nil
}

// Update applies partial updates to the business profile.
func (r *Repository) Update(ctx context.Context, businessID uuid.UUID, name, email, phone, address, displayLocale, quotePrefix *string) (*Business, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE businesses SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			address = COALESCE($5, address),
			display_locale = COALESCE($6, display_locale),
			quote_prefix = COALESCE($7, quote_prefix),
			updated_at = now()
		WHERE id = $1
	`, businessID, name, email, phone, address, displayLocale, quotePrefix)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("business not found")
	}
	return r.Get(ctx, businessID)
}
