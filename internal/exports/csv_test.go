package exports

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleQuote(number string, items []ExportItem) ExportQuote {
	return ExportQuote{
		QuoteNumber:     number,
		Status:          "DRAFT",
		ClientFirstName: "Marie",
		ClientLastName:  "Dupont",
		ClientEmail:     "marie@example.com",
		Subtotal:        dec("100.00"),
		DiscountType:    "NONE",
		DiscountValue:   dec("0"),
		Total:           dec("100.00"),
		CreatedAt:       time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC),
		Items:           items,
	}
}

func TestBuildCSV_EmptyTenantYieldsEmptyFile(t *testing.T) {
	content, rows, err := BuildCSV(nil, "fr-FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(content) != 0 {
		t.Fatalf("expected empty content, got %q", content)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows, got %d", rows)
	}
}

func TestBuildCSV_OneRowPerItem(t *testing.T) {
	quotes := []ExportQuote{
		sampleQuote("DEVIS-2025-001", []ExportItem{
			{Name: "Nettoyage", UnitPrice: dec("50.00"), Quantity: 2, LineTotal: dec("100.00")},
			{Name: "Entretien", UnitPrice: dec("30.00"), Quantity: 1, LineTotal: dec("30.00")},
		}),
		sampleQuote("DEVIS-2025-002", nil),
	}

	content, rows, err := BuildCSV(quotes, "fr-FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 3 {
		t.Fatalf("expected 3 data rows, got %d", rows)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "quote_number,") {
		t.Fatalf("expected header row first, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "DEVIS-2025-001,09/03/2025,DRAFT,Marie Dupont,") {
		t.Fatalf("unexpected first data row %q", lines[1])
	}
	// Quote columns stay blank on follow-up rows of the same quote.
	if !strings.HasPrefix(lines[2], ",,,,,,,,,,,,Entretien,") {
		t.Fatalf("expected blank quote columns on second item row, got %q", lines[2])
	}
	// Zero-item quote still emits one row with blank item columns.
	if !strings.HasSuffix(lines[3], ",,,,,") {
		t.Fatalf("expected blank item columns for empty quote, got %q", lines[3])
	}
	if !strings.HasPrefix(lines[3], "DEVIS-2025-002,") {
		t.Fatalf("expected zero-item quote row, got %q", lines[3])
	}
}

func TestBuildCSV_QuotingRules(t *testing.T) {
	notes := `Note, with a comma`
	quote := sampleQuote("DEVIS-2025-001", []ExportItem{
		{Name: `She said "hi"`, UnitPrice: dec("10.00"), Quantity: 1, LineTotal: dec("10.00")},
	})
	quote.Notes = &notes

	content, _, err := BuildCSV([]ExportQuote{quote}, "fr-FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(content)
	if !strings.Contains(text, `"Note, with a comma"`) {
		t.Fatalf("expected comma field quoted, got %q", text)
	}
	if !strings.Contains(text, `"She said ""hi"""`) {
		t.Fatalf("expected inner quotes doubled, got %q", text)
	}
}

func TestBuildCSV_LocaleDateLayouts(t *testing.T) {
	quotes := []ExportQuote{sampleQuote("DEVIS-2025-001", nil)}

	content, _, err := BuildCSV(quotes, "en-US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(content), "03/09/2025") {
		t.Fatalf("expected US date layout, got %q", content)
	}

	content, _, err = BuildCSV(quotes, "ja-JP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(content), "2025-03-09") {
		t.Fatalf("expected ISO fallback layout, got %q", content)
	}
}

func TestBuildCSV_PackageDiscountColumn(t *testing.T) {
	discount := dec("8.00")
	zero := dec("0")
	quotes := []ExportQuote{
		sampleQuote("DEVIS-2025-001", []ExportItem{
			{Name: "Pack", UnitPrice: dec("80.00"), Quantity: 1, LineTotal: dec("80.00"), PackageDiscount: &discount},
			{Name: "Simple", UnitPrice: dec("20.00"), Quantity: 1, LineTotal: dec("20.00"), PackageDiscount: &zero},
		}),
	}

	content, _, err := BuildCSV(quotes, "fr-FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if !strings.HasSuffix(lines[1], ",8.00") {
		t.Fatalf("expected package discount 8.00 on first item, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",") {
		t.Fatalf("expected blank discount for plain line, got %q", lines[2])
	}
}
