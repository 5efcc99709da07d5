package email

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRenderQuoteSentTemplate(t *testing.T) {
	content, err := renderEmailTemplate("quote_sent", quoteSentTemplateData{
		Heading:             "Votre devis est prêt",
		ClientName:          "Marie Dupont",
		BusinessName:        "Atelier Martin",
		QuoteNumber:         "DEVIS-2025-001",
		TotalFormatted:      "152.00 €",
		ValidUntilFormatted: "30/09/2025",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Marie Dupont", "DEVIS-2025-001", "152.00 €", "30/09/2025", "Atelier Martin"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected rendered email to contain %q", want)
		}
	}
}

func TestRenderFollowUpTemplate(t *testing.T) {
	content, err := renderEmailTemplate("follow_up", followUpTemplateData{
		Heading:        "Votre devis attend votre réponse",
		ClientName:     "Marie Dupont",
		BusinessName:   "Atelier Martin",
		QuoteNumber:    "DEVIS-2025-001",
		TotalFormatted: "152.00 €",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(content, "DEVIS-2025-001") {
		t.Fatalf("expected follow-up email to contain the quote number")
	}
}

func TestQuoteSentTemplateOmitsValidityWhenUnset(t *testing.T) {
	content, err := renderEmailTemplate("quote_sent", quoteSentTemplateData{
		Heading:        "Votre devis est prêt",
		ClientName:     "Marie",
		BusinessName:   "Atelier",
		QuoteNumber:    "DEVIS-2025-002",
		TotalFormatted: "10.00 €",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(content, "valable jusqu'au") {
		t.Fatalf("expected validity line omitted, got %q", content)
	}
}

func TestFormatCurrencyEUR(t *testing.T) {
	if got := formatCurrencyEUR(decimal.New(152, 0)); got != "152.00 €" {
		t.Fatalf("expected 152.00 €, got %s", got)
	}
}
