// Package adapters wires cross-module ports without letting bounded contexts
// import each other's internals directly.
package adapters

import (
	"context"

	catalogrepo "devis_backend/internal/catalog/repository"
	quotesvc "devis_backend/internal/quotes/service"

	"github.com/google/uuid"
)

// CatalogReaderAdapter exposes the catalog repository through the quotes
// module's CatalogReader port.
type CatalogReaderAdapter struct {
	repo *catalogrepo.Repository
}

// NewCatalogReaderAdapter creates the catalog port adapter.
func NewCatalogReaderAdapter(repo *catalogrepo.Repository) *CatalogReaderAdapter {
	return &CatalogReaderAdapter{repo: repo}
}

// ServiceByID resolves an active service for quote pricing.
func (a *CatalogReaderAdapter) ServiceByID(ctx context.Context, businessID, serviceID uuid.UUID) (*quotesvc.CatalogService, error) {
	svc, err := a.repo.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}

	result := &quotesvc.CatalogService{
		ID:        svc.ID,
		Name:      svc.Name,
		UnitPrice: svc.UnitPrice,
	}
	if svc.Description != nil {
		result.Description = *svc.Description
	}
	return result, nil
}

// PackageByID resolves an active package with its parts for quote pricing.
func (a *CatalogReaderAdapter) PackageByID(ctx context.Context, businessID, packageID uuid.UUID) (*quotesvc.CatalogPackage, error) {
	pkg, err := a.repo.GetPackageWithItems(ctx, businessID, packageID)
	if err != nil {
		return nil, err
	}

	parts := make([]quotesvc.CatalogPackagePart, 0, len(pkg.Items))
	for _, item := range pkg.Items {
		parts = append(parts, quotesvc.CatalogPackagePart{
			ServiceID: item.ServiceID,
			Name:      item.ServiceName,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	result := &quotesvc.CatalogPackage{
		ID:            pkg.ID,
		Name:          pkg.Name,
		DiscountType:  pkg.DiscountType,
		DiscountValue: pkg.DiscountValue,
		Parts:         parts,
	}
	if pkg.Description != nil {
		result.Description = *pkg.Description
	}
	return result, nil
}

// Compile-time check
var _ quotesvc.CatalogReader = (*CatalogReaderAdapter)(nil)
