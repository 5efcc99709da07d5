package exports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

var csvHeader = []string{
	"quote_number",
	"created_at",
	"status",
	"client_name",
	"client_email",
	"subtotal",
	"discount_type",
	"discount_value",
	"total",
	"sent_at",
	"valid_until",
	"notes",
	"item_name",
	"item_description",
	"item_unit_price",
	"item_quantity",
	"item_line_total",
	"item_package_discount",
}

// dateLayoutFor maps a BCP 47 display locale to the date layout used in the
// exported file. Unknown locales fall back to ISO.
func dateLayoutFor(locale string) string {
	switch locale {
	case "fr-FR", "fr-BE", "fr-CH", "nl-NL", "nl-BE", "de-DE", "es-ES", "it-IT":
		return "02/01/2006"
	case "en-US":
		return "01/02/2006"
	default:
		return "2006-01-02"
	}
}

// BuildCSV renders the quotes into CSV. One row per (quote, item) pair;
// quotes without items emit a single row with blank item columns. Quote-level
// columns are only filled on the first row of each quote's group. A tenant
// with zero quotes yields a zero-length file. Returns the file content and
// the number of data rows written.
func BuildCSV(quotes []ExportQuote, locale string) ([]byte, int, error) {
	if len(quotes) == 0 {
		return []byte{}, 0, nil
	}

	layout := dateLayoutFor(locale)
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, 0, fmt.Errorf("write csv header: %w", err)
	}

	rowCount := 0
	for _, quote := range quotes {
		if len(quote.Items) == 0 {
			if err := writer.Write(append(quoteColumns(quote, layout), blankItemColumns()...)); err != nil {
				return nil, 0, fmt.Errorf("write csv row: %w", err)
			}
			rowCount++
			continue
		}
		for i, item := range quote.Items {
			left := blankQuoteColumns()
			if i == 0 {
				left = quoteColumns(quote, layout)
			}
			if err := writer.Write(append(left, itemColumns(item)...)); err != nil {
				return nil, 0, fmt.Errorf("write csv row: %w", err)
			}
			rowCount++
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, 0, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), rowCount, nil
}

func quoteColumns(quote ExportQuote, layout string) []string {
	return []string{
		quote.QuoteNumber,
		quote.CreatedAt.Format(layout),
		quote.Status,
		clientName(quote),
		quote.ClientEmail,
		quote.Subtotal.StringFixed(2),
		quote.DiscountType,
		quote.DiscountValue.StringFixed(2),
		quote.Total.StringFixed(2),
		formatOptionalDate(quote.SentAt, layout),
		formatOptionalDate(quote.ValidUntil, layout),
		stringOrEmpty(quote.Notes),
	}
}

func itemColumns(item ExportItem) []string {
	packageDiscount := ""
	if item.PackageDiscount != nil && !item.PackageDiscount.IsZero() {
		packageDiscount = item.PackageDiscount.StringFixed(2)
	}
	return []string{
		item.Name,
		stringOrEmpty(item.Description),
		item.UnitPrice.StringFixed(2),
		strconv.Itoa(item.Quantity),
		item.LineTotal.StringFixed(2),
		packageDiscount,
	}
}

func blankQuoteColumns() []string {
	return make([]string, 12)
}

func blankItemColumns() []string {
	return make([]string, 6)
}

func clientName(quote ExportQuote) string {
	if quote.ClientFirstName == "" {
		return quote.ClientLastName
	}
	if quote.ClientLastName == "" {
		return quote.ClientFirstName
	}
	return quote.ClientFirstName + " " + quote.ClientLastName
}

func formatOptionalDate(value *time.Time, layout string) string {
	if value == nil {
		return ""
	}
	return value.Format(layout)
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
