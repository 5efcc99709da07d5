// Package service implements catalogue management for services and packages.
package service

import (
	"context"

	"devis_backend/internal/catalog/repository"
	"devis_backend/internal/catalog/transport"
	"devis_backend/platform/apperr"
	"devis_backend/platform/money"
	"devis_backend/platform/sanitize"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount policies for packages.
const (
	DiscountNone       = "NONE"
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

// Service implements catalogue operations.
type Service struct {
	repo *repository.Repository
}

// New creates a new catalog service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// =============================================================================
// Services
// =============================================================================

// CreateService adds a catalogue service.
func (s *Service) CreateService(ctx context.Context, businessID uuid.UUID, req transport.CreateServiceRequest) (*transport.ServiceResponse, error) {
	if req.UnitPrice.Decimal().IsNegative() {
		return nil, apperr.Validation("unit price cannot be negative")
	}

	svc := &repository.Service{
		Name:        sanitize.Text(req.Name),
		Description: sanitize.TextPtr(req.Description),
		UnitPrice:   req.UnitPrice.Decimal(),
		DurationMin: req.DurationMin,
		Category:    sanitize.TextPtr(req.Category),
	}
	created, err := s.repo.CreateService(ctx, businessID, svc)
	if err != nil {
		return nil, err
	}
	return buildServiceResponse(created), nil
}

// GetService returns a single catalogue service.
func (s *Service) GetService(ctx context.Context, businessID, serviceID uuid.UUID) (*transport.ServiceResponse, error) {
	svc, err := s.repo.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}
	return buildServiceResponse(svc), nil
}

// ListServices returns the business's services.
func (s *Service) ListServices(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]transport.ServiceResponse, error) {
	services, err := s.repo.ListServices(ctx, businessID, includeInactive)
	if err != nil {
		return nil, err
	}
	responses := make([]transport.ServiceResponse, 0, len(services))
	for i := range services {
		responses = append(responses, *buildServiceResponse(&services[i]))
	}
	return responses, nil
}

// UpdateService applies partial changes to a service.
func (s *Service) UpdateService(ctx context.Context, businessID, serviceID uuid.UUID, req transport.UpdateServiceRequest) (*transport.ServiceResponse, error) {
	var price *decimal.Decimal
	if req.UnitPrice != nil {
		d := req.UnitPrice.Decimal()
		if d.IsNegative() {
			return nil, apperr.Validation("unit price cannot be negative")
		}
		price = &d
	}

	svc, err := s.repo.UpdateService(ctx, businessID, serviceID,
		sanitize.TextPtr(req.Name), sanitize.TextPtr(req.Description), price, req.DurationMin, sanitize.TextPtr(req.Category))
	if err != nil {
		return nil, err
	}
	return buildServiceResponse(svc), nil
}

// DeleteService soft-deletes a service so existing quotes keep their snapshots.
func (s *Service) DeleteService(ctx context.Context, businessID, serviceID uuid.UUID) error {
	return s.repo.SoftDeleteService(ctx, businessID, serviceID)
}

// =============================================================================
// Packages
// =============================================================================

// CreatePackage adds a service bundle with a discount policy.
func (s *Service) CreatePackage(ctx context.Context, businessID uuid.UUID, req transport.CreatePackageRequest) (*transport.PackageResponse, error) {
	discountValue, err := validateDiscount(req.DiscountType, req.DiscountValue)
	if err != nil {
		return nil, err
	}

	pkg := &repository.Package{
		Name:          sanitize.Text(req.Name),
		Description:   sanitize.TextPtr(req.Description),
		DiscountType:  req.DiscountType,
		DiscountValue: discountValue,
		Items:         toRepoItems(req.Items),
	}
	created, err := s.repo.CreatePackageWithItems(ctx, businessID, pkg)
	if err != nil {
		return nil, err
	}
	return buildPackageResponse(created), nil
}

// GetPackage returns a single package with resolved items.
func (s *Service) GetPackage(ctx context.Context, businessID, packageID uuid.UUID) (*transport.PackageResponse, error) {
	pkg, err := s.repo.GetPackageWithItems(ctx, businessID, packageID)
	if err != nil {
		return nil, err
	}
	return buildPackageResponse(pkg), nil
}

// ListPackages returns the business's packages.
func (s *Service) ListPackages(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]transport.PackageResponse, error) {
	packages, err := s.repo.ListPackages(ctx, businessID, includeInactive)
	if err != nil {
		return nil, err
	}
	responses := make([]transport.PackageResponse, 0, len(packages))
	for i := range packages {
		responses = append(responses, *buildPackageResponse(&packages[i]))
	}
	return responses, nil
}

// UpdatePackage applies partial changes; a provided item list replaces the
// previous one atomically.
func (s *Service) UpdatePackage(ctx context.Context, businessID, packageID uuid.UUID, req transport.UpdatePackageRequest) (*transport.PackageResponse, error) {
	var discountValue *decimal.Decimal
	if req.DiscountType != nil || req.DiscountValue != nil {
		discountType := ""
		if req.DiscountType != nil {
			discountType = *req.DiscountType
		} else {
			existing, err := s.repo.GetPackageWithItems(ctx, businessID, packageID)
			if err != nil {
				return nil, err
			}
			discountType = existing.DiscountType
		}
		validated, err := validateDiscount(discountType, req.DiscountValue)
		if err != nil {
			return nil, err
		}
		discountValue = &validated
	}

	var items []repository.PackageItem
	if req.Items != nil {
		items = toRepoItems(req.Items)
	}

	pkg, err := s.repo.UpdatePackageWithItems(ctx, businessID, packageID,
		sanitize.TextPtr(req.Name), sanitize.TextPtr(req.Description), req.DiscountType, discountValue, items)
	if err != nil {
		return nil, err
	}
	return buildPackageResponse(pkg), nil
}

// DeletePackage soft-deletes a package.
func (s *Service) DeletePackage(ctx context.Context, businessID, packageID uuid.UUID) error {
	return s.repo.SoftDeletePackage(ctx, businessID, packageID)
}

// =============================================================================
// Helpers
// =============================================================================

func validateDiscount(discountType string, value *money.Money) (decimal.Decimal, error) {
	switch discountType {
	case DiscountNone:
		return decimal.Zero, nil
	case DiscountPercentage:
		if value == nil {
			return decimal.Zero, apperr.Validation("discount value is required for percentage discounts")
		}
		d := value.Decimal()
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
			return decimal.Zero, apperr.Validation("percentage discount must be between 0 and 100")
		}
		return d, nil
	case DiscountFixed:
		if value == nil {
			return decimal.Zero, apperr.Validation("discount value is required for fixed discounts")
		}
		d := value.Decimal()
		if d.IsNegative() {
			return decimal.Zero, apperr.Validation("fixed discount cannot be negative")
		}
		return d, nil
	default:
		return decimal.Zero, apperr.Validation("unknown discount type")
	}
}

func toRepoItems(inputs []transport.PackageItemInput) []repository.PackageItem {
	items := make([]repository.PackageItem, 0, len(inputs))
	for _, input := range inputs {
		items = append(items, repository.PackageItem{
			ServiceID: input.ServiceID,
			Quantity:  input.Quantity,
		})
	}
	return items
}

func buildServiceResponse(s *repository.Service) *transport.ServiceResponse {
	resp := &transport.ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		UnitPrice:   money.FromDecimal(s.UnitPrice),
		DurationMin: s.DurationMin,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Description != nil {
		resp.Description = *s.Description
	}
	if s.Category != nil {
		resp.Category = *s.Category
	}
	return resp
}

func buildPackageResponse(p *repository.Package) *transport.PackageResponse {
	items := make([]transport.PackageItemResponse, 0, len(p.Items))
	basePrice := decimal.Zero
	for _, item := range p.Items {
		basePrice = basePrice.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, transport.PackageItemResponse{
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			UnitPrice:   money.FromDecimal(item.UnitPrice),
			Quantity:    item.Quantity,
		})
	}

	resp := &transport.PackageResponse{
		ID:            p.ID,
		Name:          p.Name,
		DiscountType:  p.DiscountType,
		DiscountValue: money.FromDecimal(p.DiscountValue),
		BasePrice:     money.FromDecimal(basePrice),
		IsActive:      p.IsActive,
		Items:         items,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Description != nil {
		resp.Description = *p.Description
	}
	return resp
}
