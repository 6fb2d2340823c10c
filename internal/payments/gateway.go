package payments

import "context"

// CheckoutSession is the gateway-neutral view of a hosted checkout session.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentIntent string // processor transaction identifier
	PaymentStatus string // "paid" once the charge completed
	AmountTotal   int64  // minor currency units
	Currency      string
	DonorName     string
	DonorEmail    string
}

// StatusPaid is the payment status a session reaches once the charge
// has completed.
const StatusPaid = "paid"

// CreateCheckoutInput describes the single-line-item donation session to open.
type CreateCheckoutInput struct {
	DonorName   string
	DonorEmail  string
	AmountMinor int64 // minor currency units
	Currency    string
	SuccessURL  string
	CancelURL   string
}

// Gateway is the boundary to the payment processor: open a hosted checkout
// session, and later retrieve it by identifier to confirm the charge.
type Gateway interface {
	CreateCheckout(ctx context.Context, in CreateCheckoutInput) (*CheckoutSession, error)
	GetCheckout(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
