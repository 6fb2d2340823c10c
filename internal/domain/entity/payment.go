package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed one-time monetary donation. The processor's
// transaction identifier is the idempotency key: at most one Payment exists
// per TransactionID, enforced by a unique index. Records are immutable.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	Amount        float64            `bson:"amount" json:"amount"` // major currency units
	Currency      string             `bson:"currency" json:"currency"`
	DonorName     string             `bson:"donor_name,omitempty" json:"donor_name,omitempty"`
	DonorEmail    string             `bson:"donor_email" json:"donor_email"`
	PaymentStatus string             `bson:"payment_status" json:"payment_status"`
	PaidAt        time.Time          `bson:"paid_at" json:"paid_at"`
}
