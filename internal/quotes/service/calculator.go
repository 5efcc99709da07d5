// Package service implements quote pricing and lifecycle management.
package service

import (
	"fmt"

	"devis_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount policies shared by packages and quote-level discounts.
const (
	DiscountNone       = "NONE"
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

var oneHundred = decimal.NewFromInt(100)

// LineCandidate is a priced line awaiting calculation. The interface is
// sealed: only ServiceLine and PackageLine satisfy it, and the calculator
// fails loudly on anything else.
type LineCandidate interface {
	isLineCandidate()
}

// ServiceLine prices a single catalogue service at a unit price and quantity.
type ServiceLine struct {
	ServiceID   uuid.UUID
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Quantity    int
}

func (ServiceLine) isLineCandidate() {}

// PackageLine prices a bundle at its combined base price with a resolved
// discount amount. Quantity is always one.
type PackageLine struct {
	PackageID      uuid.UUID
	Name           string
	Description    string
	BasePrice      decimal.Decimal
	DiscountAmount decimal.Decimal
}

func (PackageLine) isLineCandidate() {}

// CalculatedLine is a fully priced quote line ready for persistence.
type CalculatedLine struct {
	ServiceID       *uuid.UUID
	PackageID       *uuid.UUID
	Name            string
	Description     string
	UnitPrice       decimal.Decimal
	Quantity        int
	LineTotal       decimal.Decimal
	PackageDiscount decimal.Decimal
}

// QuoteTotals holds the derived monetary fields of a quote.
type QuoteTotals struct {
	Subtotal              decimal.Decimal
	PackageDiscountsTotal decimal.Decimal
	DiscountType          string
	DiscountValue         decimal.Decimal
	DiscountAmount        decimal.Decimal
	Total                 decimal.Decimal
}

// ComputeDiscount resolves a discount policy against a base amount, rounded
// to cents. Percentage values are interpreted as a percentage of the base.
func ComputeDiscount(base decimal.Decimal, discountType string, discountValue decimal.Decimal) (decimal.Decimal, error) {
	switch discountType {
	case DiscountNone, "":
		return decimal.Zero, nil
	case DiscountPercentage:
		return roundCents(base.Mul(discountValue).Div(oneHundred)), nil
	case DiscountFixed:
		return roundCents(discountValue), nil
	default:
		return decimal.Zero, apperr.Validation(fmt.Sprintf("unknown discount type %q", discountType))
	}
}

// CalculateQuote prices every candidate line and derives the quote totals.
// The subtotal is rounded to cents after summation; package discounts are
// tracked beside their lines and subtracted from the subtotal, then the
// quote-level discount is applied. The total may be negative.
func CalculateQuote(candidates []LineCandidate, discountType string, discountValue decimal.Decimal) ([]CalculatedLine, *QuoteTotals, error) {
	if len(candidates) == 0 {
		return nil, nil, apperr.Validation("a quote requires at least one line item")
	}

	lines := make([]CalculatedLine, 0, len(candidates))
	subtotal := decimal.Zero
	packageDiscounts := decimal.Zero

	for _, candidate := range candidates {
		switch line := candidate.(type) {
		case ServiceLine:
			if line.Quantity < 1 {
				return nil, nil, apperr.Validation("line quantity must be at least 1")
			}
			lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			serviceID := line.ServiceID
			lines = append(lines, CalculatedLine{
				ServiceID:       &serviceID,
				Name:            line.Name,
				Description:     line.Description,
				UnitPrice:       line.UnitPrice,
				Quantity:        line.Quantity,
				LineTotal:       lineTotal,
				PackageDiscount: decimal.Zero,
			})
			subtotal = subtotal.Add(lineTotal)

		case PackageLine:
			packageID := line.PackageID
			lines = append(lines, CalculatedLine{
				PackageID:       &packageID,
				Name:            line.Name,
				Description:     line.Description,
				UnitPrice:       line.BasePrice,
				Quantity:        1,
				LineTotal:       line.BasePrice,
				PackageDiscount: line.DiscountAmount,
			})
			subtotal = subtotal.Add(line.BasePrice)
			packageDiscounts = packageDiscounts.Add(line.DiscountAmount)

		default:
			return nil, nil, apperr.Internal(fmt.Sprintf("unknown line candidate %T", candidate))
		}
	}

	subtotal = roundCents(subtotal)
	afterPackages := subtotal.Sub(packageDiscounts)

	discountAmount, err := ComputeDiscount(afterPackages, discountType, discountValue)
	if err != nil {
		return nil, nil, err
	}

	totals := &QuoteTotals{
		Subtotal:              subtotal,
		PackageDiscountsTotal: packageDiscounts,
		DiscountType:          normalizeDiscountType(discountType),
		DiscountValue:         discountValue,
		DiscountAmount:        discountAmount,
		Total:                 afterPackages.Sub(discountAmount),
	}
	return lines, totals, nil
}

// PackageBasePrice sums price×quantity over the package's parts.
func PackageBasePrice(parts []PackagePart) decimal.Decimal {
	base := decimal.Zero
	for _, part := range parts {
		base = base.Add(part.UnitPrice.Mul(decimal.NewFromInt(int64(part.Quantity))))
	}
	return base
}

// PackagePart is one service entry contributing to a package's base price.
type PackagePart struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

func normalizeDiscountType(discountType string) string {
	if discountType == "" {
		return DiscountNone
	}
	return discountType
}

func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
