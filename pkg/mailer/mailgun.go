package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send sends an email via Mailgun. html is optional; if provided it will be used as HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

// RenderReceipt builds the subject and plain-text body for a donation receipt.
func RenderReceipt(job ReceiptJob) (subject, text string) {
	name := job.DonorName
	if name == "" {
		name = "donor"
	}
	subject = "Thank you for your donation"
	text = fmt.Sprintf(
		"Dear %s,\n\nWe received your donation of %.2f %s on %s.\nTransaction reference: %s\n\nYour contribution keeps blood available for patients who need it.\n",
		name,
		job.Amount,
		strings.ToUpper(job.Currency),
		job.PaidAt.Format("02 January 2006, 15:04 MST"),
		job.TransactionID,
	)
	return subject, text
}
