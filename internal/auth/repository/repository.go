// Package repository provides data access for users and their businesses.
package repository

import (
	"context"
	"errors"
	"time"

	"devis_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is a row in the users table.
type User struct {
	ID           uuid.UUID `db:"id"`
	BusinessID   uuid.UUID `db:"business_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	CreatedAt    time.Time `db:"created_at"`
}

// Repository provides user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateBusinessWithOwner inserts the business and its owner user in one
// transaction, so a failed user insert never leaves an orphan business.
func (r *Repository) CreateBusinessWithOwner(ctx context.Context, businessName, quotePrefix, displayLocale, ownerName, email, passwordHash string) (*User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var businessID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO businesses (name, email, quote_prefix, display_locale)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, businessName, email, quotePrefix, displayLocale).Scan(&businessID)
	if err != nil {
		return nil, err
	}

	user := &User{BusinessID: businessID, Email: email, PasswordHash: passwordHash, Name: ownerName}
	err = tx.QueryRow(ctx, `
		INSERT INTO users (business_id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, businessID, email, passwordHash, ownerName).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail fetches a user by email for credential verification.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		SELECT id, business_id, email, password_hash, name, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.BusinessID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}
