// Package transport defines request/response DTOs for the catalog module.
package transport

import (
	"time"

	"devis_backend/platform/money"

	"github.com/google/uuid"
)

// CreateServiceRequest creates a catalogue service.
type CreateServiceRequest struct {
	Name        string      `json:"name" binding:"required,min=1,max=200"`
	Description *string     `json:"description" binding:"omitempty,max=2000"`
	UnitPrice   money.Money `json:"unitPrice" binding:"required"`
	DurationMin *int        `json:"durationMin" binding:"omitempty,min=0"`
	Category    *string     `json:"category" binding:"omitempty,max=100"`
}

// UpdateServiceRequest applies partial updates to a service.
type UpdateServiceRequest struct {
	Name        *string      `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string      `json:"description" binding:"omitempty,max=2000"`
	UnitPrice   *money.Money `json:"unitPrice"`
	DurationMin *int         `json:"durationMin" binding:"omitempty,min=0"`
	Category    *string      `json:"category" binding:"omitempty,max=100"`
}

// ServiceResponse is a catalogue service returned to the API consumer.
type ServiceResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	UnitPrice   money.Money `json:"unitPrice"`
	DurationMin *int        `json:"durationMin,omitempty"`
	Category    string      `json:"category,omitempty"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PackageItemInput is one ordered service entry in a package.
type PackageItemInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreatePackageRequest creates a service bundle with a discount policy.
type CreatePackageRequest struct {
	Name          string             `json:"name" binding:"required,min=1,max=200"`
	Description   *string            `json:"description" binding:"omitempty,max=2000"`
	DiscountType  string             `json:"discountType" binding:"required,oneof=NONE PERCENTAGE FIXED"`
	DiscountValue *money.Money       `json:"discountValue"`
	Items         []PackageItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdatePackageRequest applies partial updates to a package. When Items is
// present the whole item set is replaced.
type UpdatePackageRequest struct {
	Name          *string            `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string            `json:"description" binding:"omitempty,max=2000"`
	DiscountType  *string            `json:"discountType" binding:"omitempty,oneof=NONE PERCENTAGE FIXED"`
	DiscountValue *money.Money       `json:"discountValue"`
	Items         []PackageItemInput `json:"items" binding:"omitempty,min=1,dive"`
}

// PackageItemResponse is one resolved package entry.
type PackageItemResponse struct {
	ServiceID   uuid.UUID   `json:"serviceId"`
	ServiceName string      `json:"serviceName"`
	UnitPrice   money.Money `json:"unitPrice"`
	Quantity    int         `json:"quantity"`
}

// PackageResponse is a package returned to the API consumer.
type PackageResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	DiscountType  string                `json:"discountType"`
	DiscountValue money.Money           `json:"discountValue"`
	BasePrice     money.Money           `json:"basePrice"`
	IsActive      bool                  `json:"isActive"`
	Items         []PackageItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}
