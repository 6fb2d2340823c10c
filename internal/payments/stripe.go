package payments

import (
	"context"
	"errors"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

const stripeTimeout = 10 * time.Second

// StripeGateway implements Gateway on top of Stripe Checkout.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is not configured")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}, nil
}

func (g *StripeGateway) CreateCheckout(ctx context.Context, in CreateCheckoutInput) (*CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, stripeTimeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(in.Currency),
				UnitAmount: stripe.Int64(in.AmountMinor),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Blood donation fund contribution"),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		CustomerEmail: stripe.String(in.DonorEmail),
		SuccessURL:    stripe.String(in.SuccessURL),
		CancelURL:     stripe.String(in.CancelURL),
		Metadata: map[string]string{
			"donor_name":  in.DonorName,
			"donor_email": in.DonorEmail,
		},
	}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(s), nil
}

func (g *StripeGateway) GetCheckout(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, stripeTimeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(s), nil
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	cs := &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		DonorName:     s.Metadata["donor_name"],
		DonorEmail:    s.Metadata["donor_email"],
	}
	if s.PaymentIntent != nil {
		cs.PaymentIntent = s.PaymentIntent.ID
	}
	if cs.DonorEmail == "" && s.CustomerEmail != "" {
		cs.DonorEmail = s.CustomerEmail
	}
	if cs.DonorEmail == "" && s.CustomerDetails != nil {
		cs.DonorEmail = s.CustomerDetails.Email
	}
	return cs
}

var _ Gateway = (*StripeGateway)(nil)
