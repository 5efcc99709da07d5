// Package money provides a monetary amount type for API boundaries.
// Internally amounts are arbitrary-precision decimals; on the wire they are
// plain JSON numbers with two decimal places, never a decimal object.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount. The zero value is 0.00.
type Money struct {
	d decimal.Decimal
}

// FromDecimal wraps a decimal as a Money value.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// New creates a Money value from a scaled integer, e.g. New(15200, 2) == 152.00.
func New(value int64, exp int32) Money {
	return Money{d: decimal.New(value, -exp)}
}

// Zero is the 0.00 amount.
func Zero() Money {
	return Money{}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON renders the amount as a plain JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	text := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if text == "" || text == "null" {
		m.d = decimal.Decimal{}
		return nil
	}
	parsed, err := decimal.NewFromString(text)
	if err != nil {
		return fmt.Errorf("invalid monetary amount %q: %w", text, err)
	}
	m.d = parsed
	return nil
}
