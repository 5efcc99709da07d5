// Package repository provides tenant-scoped data access for clients.
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
)

// Client is a row in the clients table.
type Client struct {
	ID         uuid.UUID `db:"id"`
	BusinessID uuid.UUID `db:"business_id"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	Email      string    `db:"email"`
	Phone      *string   `db:"phone"`
	Notes      *string   `db:"notes"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ListParams controls client listing.
type ListParams struct {
	Search   string
	Page     int
	PageSize int
}

// ListResult is a page of clients with the total count.
type ListResult struct {
	Clients []Client
	Total   int
}

// Repository provides client persistence. Every query is scoped by business_id.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new clients repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new client.
func (r *Repository) Create(ctx context.Context, businessID uuid.UUID, c *Client) (*Client, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO clients (business_id, first_name, last_name, email, phone, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, businessID, c.FirstName, c.LastName, c.Email, c.Phone, c.Notes).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.BusinessID = businessID
	return c, nil
}

// Get fetches a client by ID within the business.
func (r *Repository) Get(ctx context.Context, businessID, clientID uuid.UUID) (*Client, error) {
	var c Client
	err := r.pool.QueryRow(ctx, `
		SELECT id, business_id, first_name, last_name, email, phone, notes, created_at, updated_at
		FROM clients
		WHERE id = $1 AND business_id = $2
	`, clientID, businessID).Scan(&c.ID, &c.BusinessID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, err
	}
	return &c, nil
}

// List returns a page of clients matching the optional search term.
func (r *Repository) List(ctx context.Context, businessID uuid.UUID, params ListParams) (*ListResult, error) {
	whereClauses := []string{"business_id = $1"}
	args := []interface{}{businessID}
	argIdx := 2

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	where := strings.Join(whereClauses, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM clients WHERE "+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	offset := (params.Page - 1) * params.PageSize
	query := fmt.Sprintf(`
		SELECT id, business_id, first_name, last_name, email, phone, notes, created_at, updated_at
		FROM clients
		WHERE %s
		ORDER BY last_name ASC, first_name ASC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]Client, 0)
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ListResult{Clients: clients, Total: total}, nil
}

// Update applies partial updates to a client.
func (r *Repository) Update(ctx context.Context, businessID, clientID uuid.UUID, firstName, lastName, email, phone, notes *string) (*Client, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients SET
			first_name = COALESCE($3, first_name),
			last_name = COALESCE($4, last_name),
			email = COALESCE($5, email),
			phone = COALESCE($6, phone),
			notes = COALESCE($7, notes),
			updated_at = now()
		WHERE id = $1 AND business_id = $2
	`, clientID, businessID, firstName, lastName, email, phone, notes)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("client not found")
	}
	return r.Get(ctx, businessID, clientID)
}

// Delete removes a client. Deletion is refused while quotes still reference
// the client; the FK constraint backstops the pre-check.
func (r *Repository) Delete(ctx context.Context, businessID, clientID uuid.UUID) error {
	var quoteCount int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM quotes WHERE client_id = $1 AND business_id = $2
	`, clientID, businessID).Scan(&quoteCount)
	if err != nil {
		return err
	}
	if quoteCount > 0 {
		return apperr.Conflict("client has quotes and cannot be deleted")
	}

	tag, err := r.pool.Exec(ctx, `
		DELETE FROM clients WHERE id = $1 AND business_id = $2
	`, clientID, businessID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperr.Conflict("client has quotes and cannot be deleted")
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}
