package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendQuoteEmail delivers the freshly sent quote to the client.
func (s *SMTPSender) SendQuoteEmail(ctx context.Context, toEmail string, data QuoteSentEmail) error {
	tmplData := quoteSentTemplateData{
		Heading:        "Votre devis est prêt",
		ClientName:     data.ClientName,
		BusinessName:   data.BusinessName,
		QuoteNumber:    data.QuoteNumber,
		TotalFormatted: formatCurrencyEUR(data.Total),
	}
	if data.ValidUntil != nil {
		tmplData.ValidUntilFormatted = data.ValidUntil.Format("02/01/2006")
	}

	content, err := renderEmailTemplate("quote_sent", tmplData)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf(subjectQuoteSentFmt, data.QuoteNumber, data.BusinessName)
	return s.send(ctx, toEmail, subject, content)
}

// SendFollowUpEmail delivers a reminder for a quote that is still awaiting a
// response.
func (s *SMTPSender) SendFollowUpEmail(ctx context.Context, toEmail string, data FollowUpEmail) error {
	content, err := renderEmailTemplate("follow_up", followUpTemplateData{
		Heading:        "Votre devis attend votre réponse",
		ClientName:     data.ClientName,
		BusinessName:   data.BusinessName,
		QuoteNumber:    data.QuoteNumber,
		TotalFormatted: formatCurrencyEUR(data.Total),
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf(subjectFollowUpFmt, data.QuoteNumber, data.BusinessName)
	return s.send(ctx, toEmail, subject, content)
}

var _ Sender = (*SMTPSender)(nil)
