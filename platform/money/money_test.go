package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMarshalPlainNumber(t *testing.T) {
	m := FromDecimal(decimal.RequireFromString("152"))
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "152.00" {
		t.Fatalf("expected 152.00, got %s", data)
	}
}

func TestMarshalNested(t *testing.T) {
	type line struct {
		Total Money `json:"total"`
	}
	type quote struct {
		Subtotal Money  `json:"subtotal"`
		Lines    []line `json:"lines"`
	}
	q := quote{
		Subtotal: FromDecimal(decimal.RequireFromString("100.5")),
		Lines:    []line{{Total: FromDecimal(decimal.RequireFromString("-20"))}},
	}
	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	expected := `{"subtotal":100.50,"lines":[{"total":-20.00}]}`
	if string(data) != expected {
		t.Fatalf("expected %s, got %s", expected, data)
	}
}

func TestUnmarshal(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte("49.90"), &m); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if !m.Decimal().Equal(decimal.RequireFromString("49.90")) {
		t.Fatalf("expected 49.90, got %s", m)
	}

	if err := json.Unmarshal([]byte(`"12.5"`), &m); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if m.String() != "12.50" {
		t.Fatalf("expected 12.50, got %s", m)
	}

	if err := json.Unmarshal([]byte(`"abc"`), &m); err == nil {
		t.Fatal("expected error for non-numeric input")
	}
}

func TestZeroValue(t *testing.T) {
	var m Money
	if m.String() != "0.00" {
		t.Fatalf("expected 0.00, got %s", m)
	}
}
