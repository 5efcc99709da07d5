package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateQuote_ServicesWithPackageAndFixedDiscount(t *testing.T) {
	candidates := []LineCandidate{
		ServiceLine{ServiceID: uuid.New(), Name: "Nettoyage", UnitPrice: dec("50.00"), Quantity: 2},
		PackageLine{PackageID: uuid.New(), Name: "Pack entretien", BasePrice: dec("80.00"), DiscountAmount: dec("8.00")},
	}

	lines, totals, err := CalculateQuote(candidates, DiscountFixed, dec("20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !totals.Subtotal.Equal(dec("180.00")) {
		t.Fatalf("expected subtotal 180.00, got %s", totals.Subtotal)
	}
	if !totals.PackageDiscountsTotal.Equal(dec("8.00")) {
		t.Fatalf("expected package discounts 8.00, got %s", totals.PackageDiscountsTotal)
	}
	if !totals.DiscountAmount.Equal(dec("20.00")) {
		t.Fatalf("expected discount amount 20.00, got %s", totals.DiscountAmount)
	}
	if !totals.Total.Equal(dec("152.00")) {
		t.Fatalf("expected total 152.00, got %s", totals.Total)
	}
}

func TestCalculateQuote_PercentageDiscount(t *testing.T) {
	candidates := []LineCandidate{
		ServiceLine{ServiceID: uuid.New(), Name: "Audit", UnitPrice: dec("200.00"), Quantity: 1},
	}

	_, totals, err := CalculateQuote(candidates, DiscountPercentage, dec("10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.DiscountAmount.Equal(dec("20.00")) {
		t.Fatalf("expected discount amount 20.00, got %s", totals.DiscountAmount)
	}
	if !totals.Total.Equal(dec("180.00")) {
		t.Fatalf("expected total 180.00, got %s", totals.Total)
	}
}

func TestCalculateQuote_NoDiscount(t *testing.T) {
	candidates := []LineCandidate{
		ServiceLine{ServiceID: uuid.New(), Name: "Audit", UnitPrice: dec("33.33"), Quantity: 3},
	}

	_, totals, err := CalculateQuote(candidates, DiscountNone, decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.Subtotal.Equal(dec("99.99")) {
		t.Fatalf("expected subtotal 99.99, got %s", totals.Subtotal)
	}
	if !totals.Total.Equal(dec("99.99")) {
		t.Fatalf("expected total 99.99, got %s", totals.Total)
	}
	if totals.DiscountType != DiscountNone {
		t.Fatalf("expected discount type NONE, got %s", totals.DiscountType)
	}
}

func TestCalculateQuote_TotalMayGoNegative(t *testing.T) {
	candidates := []LineCandidate{
		ServiceLine{ServiceID: uuid.New(), Name: "Audit", UnitPrice: dec("10.00"), Quantity: 1},
	}

	_, totals, err := CalculateQuote(candidates, DiscountFixed, dec("30"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.Total.Equal(dec("-20.00")) {
		t.Fatalf("expected total -20.00, got %s", totals.Total)
	}
}

func TestCalculateQuote_EmptyItemsRejected(t *testing.T) {
	_, _, err := CalculateQuote(nil, DiscountNone, decimal.Zero)
	if err == nil {
		t.Fatal("expected error for empty item list")
	}
}

func TestCalculateQuote_ZeroQuantityRejected(t *testing.T) {
	candidates := []LineCandidate{
		ServiceLine{ServiceID: uuid.New(), Name: "Audit", UnitPrice: dec("10.00"), Quantity: 0},
	}

	_, _, err := CalculateQuote(candidates, DiscountNone, decimal.Zero)
	if err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestCalculateQuote_UnknownDiscountTypeRejected(t *testing.T) {
	candidates := []LineCandidate{
		ServiceLine{ServiceID: uuid.New(), Name: "Audit", UnitPrice: dec("10.00"), Quantity: 1},
	}

	_, _, err := CalculateQuote(candidates, "HALF_OFF", dec("5"))
	if err == nil {
		t.Fatal("expected error for unknown discount type")
	}
}

func TestComputeDiscount_RoundsToCents(t *testing.T) {
	amount, err := ComputeDiscount(dec("99.99"), DiscountPercentage, dec("33.333"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amount.Equal(dec("33.33")) {
		t.Fatalf("expected 33.33, got %s", amount)
	}
}

func TestPackageBasePrice(t *testing.T) {
	base := PackageBasePrice([]PackagePart{
		{UnitPrice: dec("25.00"), Quantity: 2},
		{UnitPrice: dec("30.00"), Quantity: 1},
	})
	if !base.Equal(dec("80.00")) {
		t.Fatalf("expected base 80.00, got %s", base)
	}
}
