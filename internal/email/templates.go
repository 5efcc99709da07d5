package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
)

const (
	subjectQuoteSentFmt = "Devis %s de %s"
	subjectFollowUpFmt  = "Rappel : devis %s de %s"
)

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "layout_top"}}
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; color: #1f2933; margin: 0; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto;">
    <h2 style="color: #0f4c81;">{{.Heading}}</h2>
{{end}}

{{define "layout_bottom"}}
    <p style="color: #7b8794; font-size: 12px; margin-top: 32px;">{{.BusinessName}}</p>
  </div>
</body>
</html>
{{end}}

{{define "quote_sent"}}
{{template "layout_top" .}}
    <p>Bonjour {{.ClientName}},</p>
    <p>Vous trouverez ci-dessous votre devis <strong>{{.QuoteNumber}}</strong> établi par {{.BusinessName}}.</p>
    <p style="font-size: 18px;">Montant total : <strong>{{.TotalFormatted}}</strong></p>
    {{if .ValidUntilFormatted}}<p>Ce devis est valable jusqu'au {{.ValidUntilFormatted}}.</p>{{end}}
    <p>N'hésitez pas à nous contacter pour toute question.</p>
{{template "layout_bottom" .}}
{{end}}

{{define "follow_up"}}
{{template "layout_top" .}}
    <p>Bonjour {{.ClientName}},</p>
    <p>Nous vous avons récemment transmis le devis <strong>{{.QuoteNumber}}</strong> d'un montant de <strong>{{.TotalFormatted}}</strong>.</p>
    <p>Sauf erreur de notre part, nous n'avons pas encore reçu votre réponse. Souhaitez-vous que nous en discutions ?</p>
{{template "layout_bottom" .}}
{{end}}
`))

type quoteSentTemplateData struct {
	Heading             string
	ClientName          string
	BusinessName        string
	QuoteNumber         string
	TotalFormatted      string
	ValidUntilFormatted string
}

type followUpTemplateData struct {
	Heading        string
	ClientName     string
	BusinessName   string
	QuoteNumber    string
	TotalFormatted string
}

func renderEmailTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyEUR(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " €"
}
