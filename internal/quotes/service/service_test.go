package service

import (
	"context"
	"testing"

	"devis_backend/internal/quotes/repository"
	"devis_backend/internal/quotes/transport"
	"devis_backend/platform/apperr"
	"devis_backend/platform/logger"
	"devis_backend/platform/money"

	"github.com/google/uuid"
)

type fakeCatalog struct {
	services map[uuid.UUID]*CatalogService
	packages map[uuid.UUID]*CatalogPackage
}

func (f *fakeCatalog) ServiceByID(_ context.Context, _, serviceID uuid.UUID) (*CatalogService, error) {
	if svc, ok := f.services[serviceID]; ok {
		return svc, nil
	}
	return nil, apperr.NotFound("service not found")
}

func (f *fakeCatalog) PackageByID(_ context.Context, _, packageID uuid.UUID) (*CatalogPackage, error) {
	if pkg, ok := f.packages[packageID]; ok {
		return pkg, nil
	}
	return nil, apperr.NotFound("package not found")
}

func newTestService(catalog CatalogReader) *Service {
	return &Service{catalog: catalog, log: logger.New("test")}
}

func TestBuildCandidates_RejectsAmbiguousLine(t *testing.T) {
	svc := newTestService(&fakeCatalog{})
	serviceID := uuid.New()
	packageID := uuid.New()

	_, err := svc.buildCandidates(context.Background(), uuid.New(), []transport.QuoteItemInput{
		{ServiceID: &serviceID, PackageID: &packageID},
	}, nil)
	if err == nil {
		t.Fatal("expected error for line referencing both a service and a package")
	}

	_, err = svc.buildCandidates(context.Background(), uuid.New(), []transport.QuoteItemInput{
		{},
	}, nil)
	if err == nil {
		t.Fatal("expected error for line referencing neither a service nor a package")
	}
}

func TestBuildCandidates_ServiceLineUsesCataloguePrice(t *testing.T) {
	serviceID := uuid.New()
	svc := newTestService(&fakeCatalog{services: map[uuid.UUID]*CatalogService{
		serviceID: {ID: serviceID, Name: "Nettoyage", UnitPrice: dec("50.00")},
	}})

	qty := 2
	candidates, err := svc.buildCandidates(context.Background(), uuid.New(), []transport.QuoteItemInput{
		{ServiceID: &serviceID, Quantity: &qty},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line, ok := candidates[0].(ServiceLine)
	if !ok {
		t.Fatalf("expected ServiceLine, got %T", candidates[0])
	}
	if !line.UnitPrice.Equal(dec("50.00")) || line.Quantity != 2 {
		t.Fatalf("expected catalogue price 50.00 x2, got %s x%d", line.UnitPrice, line.Quantity)
	}
}

func TestBuildCandidates_NegativePriceOverrideRejected(t *testing.T) {
	serviceID := uuid.New()
	svc := newTestService(&fakeCatalog{services: map[uuid.UUID]*CatalogService{
		serviceID: {ID: serviceID, Name: "Nettoyage", UnitPrice: dec("50.00")},
	}})

	override := money.FromDecimal(dec("-1.00"))
	_, err := svc.buildCandidates(context.Background(), uuid.New(), []transport.QuoteItemInput{
		{ServiceID: &serviceID, UnitPrice: &override},
	}, nil)
	if err == nil {
		t.Fatal("expected error for negative price override")
	}
}

func TestBuildPackageCandidate_SnapshotWinsOverSubmittedChanges(t *testing.T) {
	packageID := uuid.New()
	itemID := uuid.New()
	svc := newTestService(&fakeCatalog{})

	storedPackageID := packageID
	storedDiscount := dec("8.00")
	existing := map[uuid.UUID]repository.QuoteItem{
		itemID: {
			ID:              itemID,
			Name:            "Pack entretien",
			UnitPrice:       dec("80.00"),
			Quantity:        1,
			PackageDiscount: storedDiscount,
			PackageID:       &storedPackageID,
		},
	}

	// Submitted price and quantity differ from the snapshot; both are ignored.
	override := money.FromDecimal(dec("999.00"))
	qty := 5
	candidates, err := svc.buildCandidates(context.Background(), uuid.New(), []transport.QuoteItemInput{
		{ID: &itemID, PackageID: &packageID, UnitPrice: &override, Quantity: &qty},
	}, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line, ok := candidates[0].(PackageLine)
	if !ok {
		t.Fatalf("expected PackageLine, got %T", candidates[0])
	}
	if !line.BasePrice.Equal(dec("80.00")) {
		t.Fatalf("expected stored base 80.00, got %s", line.BasePrice)
	}
	if !line.DiscountAmount.Equal(dec("8.00")) {
		t.Fatalf("expected stored discount 8.00, got %s", line.DiscountAmount)
	}
}

func TestBuildPackageCandidate_FreshPackageResolvedFromCatalogue(t *testing.T) {
	packageID := uuid.New()
	svc := newTestService(&fakeCatalog{packages: map[uuid.UUID]*CatalogPackage{
		packageID: {
			ID:            packageID,
			Name:          "Pack entretien",
			DiscountType:  DiscountPercentage,
			DiscountValue: dec("10"),
			Parts: []CatalogPackagePart{
				{ServiceID: uuid.New(), Name: "Nettoyage", UnitPrice: dec("25.00"), Quantity: 2},
				{ServiceID: uuid.New(), Name: "Entretien", UnitPrice: dec("30.00"), Quantity: 1},
			},
		},
	}})

	candidates, err := svc.buildCandidates(context.Background(), uuid.New(), []transport.QuoteItemInput{
		{PackageID: &packageID},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := candidates[0].(PackageLine)
	if !line.BasePrice.Equal(dec("80.00")) {
		t.Fatalf("expected base 80.00, got %s", line.BasePrice)
	}
	if !line.DiscountAmount.Equal(dec("8.00")) {
		t.Fatalf("expected discount 8.00, got %s", line.DiscountAmount)
	}
}

func TestIsKnownStatus(t *testing.T) {
	for _, status := range []string{repository.StatusDraft, repository.StatusSent, repository.StatusAccepted, repository.StatusRejected} {
		if !isKnownStatus(status) {
			t.Fatalf("expected %s to be a known status", status)
		}
	}
	if isKnownStatus("ARCHIVED") {
		t.Fatal("expected ARCHIVED to be unknown")
	}
}

func TestClampPageSize(t *testing.T) {
	if got := clampPageSize(0); got != defaultPageSize {
		t.Fatalf("expected default page size, got %d", got)
	}
	if got := clampPageSize(1000); got != maxPageSize {
		t.Fatalf("expected max page size, got %d", got)
	}
	if got := clampPageSize(40); got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
}
