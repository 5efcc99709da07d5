package repository

import (
	"testing"
	"time"
)

var june2025 = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestNextQuoteNumber_FirstOfYear(t *testing.T) {
	got, err := NextQuoteNumber("DEVIS", june2025, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "DEVIS-2025-001" {
		t.Fatalf("expected DEVIS-2025-001, got %s", got)
	}
}

func TestNextQuoteNumber_Increments(t *testing.T) {
	got, err := NextQuoteNumber("DEVIS", june2025, "DEVIS-2025-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "DEVIS-2025-002" {
		t.Fatalf("expected DEVIS-2025-002, got %s", got)
	}
}

func TestNextQuoteNumber_RestartsOnNewYear(t *testing.T) {
	got, err := NextQuoteNumber("DEVIS", june2025, "DEVIS-2024-117")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "DEVIS-2025-001" {
		t.Fatalf("expected DEVIS-2025-001, got %s", got)
	}
}

func TestNextQuoteNumber_WidensPast999(t *testing.T) {
	got, err := NextQuoteNumber("DEVIS", june2025, "DEVIS-2025-999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "DEVIS-2025-1000" {
		t.Fatalf("expected DEVIS-2025-1000, got %s", got)
	}
}

func TestNextQuoteNumber_PrefixWithDash(t *testing.T) {
	got, err := NextQuoteNumber("AB-CD", june2025, "AB-CD-2025-007")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "AB-CD-2025-008" {
		t.Fatalf("expected AB-CD-2025-008, got %s", got)
	}
}

func TestNextQuoteNumber_MalformedLatest(t *testing.T) {
	if _, err := NextQuoteNumber("DEVIS", june2025, "garbage"); err == nil {
		t.Fatal("expected error for malformed latest number")
	}
}

func TestParseQuoteNumber(t *testing.T) {
	year, seq, err := ParseQuoteNumber("DEVIS-2025-042")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2025 || seq != 42 {
		t.Fatalf("expected 2025/42, got %d/%d", year, seq)
	}
}

func TestParseQuoteNumber_RejectsZeroSequence(t *testing.T) {
	if _, _, err := ParseQuoteNumber("DEVIS-2025-000"); err == nil {
		t.Fatal("expected error for zero sequence")
	}
}

func TestFormatQuoteNumber(t *testing.T) {
	if got := FormatQuoteNumber("DEVIS", 2025, 7); got != "DEVIS-2025-007" {
		t.Fatalf("expected DEVIS-2025-007, got %s", got)
	}
	if got := FormatQuoteNumber("DEVIS", 2025, 1234); got != "DEVIS-2025-1234" {
		t.Fatalf("expected DEVIS-2025-1234, got %s", got)
	}
}
