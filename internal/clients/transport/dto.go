// Package transport defines request/response DTOs for the clients module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateClientRequest creates a new client.
type CreateClientRequest struct {
	FirstName string  `json:"firstName" binding:"required,min=1,max=100"`
	LastName  string  `json:"lastName" binding:"required,min=1,max=100"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
	Notes     *string `json:"notes" binding:"omitempty,max=5000"`
}

// UpdateClientRequest applies partial updates to a client.
type UpdateClientRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
	Notes     *string `json:"notes" binding:"omitempty,max=5000"`
}

// ClientResponse is a client returned to the API consumer.
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListClientsResponse is a paginated page of clients.
type ListClientsResponse struct {
	Clients  []ClientResponse `json:"clients"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}
