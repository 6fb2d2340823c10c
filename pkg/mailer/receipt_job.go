package mailer

import "time"

// ReceiptJob is the JSON payload put on the RabbitMQ queue after a payment
// is recorded. The email worker turns it into a donation receipt.
type ReceiptJob struct {
	To            string    `json:"to"`
	DonorName     string    `json:"donor_name,omitempty"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
}
