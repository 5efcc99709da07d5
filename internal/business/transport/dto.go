// Package transport defines request/response DTOs for the business module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// UpdateBusinessRequest updates the tenant profile.
type UpdateBusinessRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=2,max=200"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=32"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
	DisplayLocale *string `json:"displayLocale" binding:"omitempty,bcp47_language_tag"`
	QuotePrefix   *string `json:"quotePrefix" binding:"omitempty,alphanum,uppercase,min=2,max=10"`
}

// BusinessResponse is the tenant profile returned to clients.
type BusinessResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	DisplayLocale string    `json:"displayLocale"`
	QuotePrefix   string    `json:"quotePrefix"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
