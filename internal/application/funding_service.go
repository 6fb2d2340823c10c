package application

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
	repo "github.com/lifedrop/lifedrop-backend/internal/domain/repository"
	"github.com/lifedrop/lifedrop-backend/internal/payments"
	"github.com/lifedrop/lifedrop-backend/pkg/helpers"
	"github.com/lifedrop/lifedrop-backend/pkg/mailer"
)

var ErrInvalidAmount = errors.New("invalid donation amount")

// maxDonationMajor caps a single donation. Anything above this is a typo or
// abuse, and it keeps the minor-unit conversion far from int64 overflow.
const maxDonationMajor = 10_000_000

// FundingService creates checkout sessions and records completed payments,
// exactly once per transaction identifier.
type FundingService struct {
	Repo       repo.PaymentRepository
	Gateway    payments.Gateway
	Pub        *helpers.RabbitPublisher // optional; nil disables receipts
	Logger     *logrus.Logger
	SiteOrigin string
	Currency   string
}

func NewFundingService(r repo.PaymentRepository, gw payments.Gateway, pub *helpers.RabbitPublisher, logger *logrus.Logger, siteOrigin, currency string) *FundingService {
	return &FundingService{
		Repo:       r,
		Gateway:    gw,
		Pub:        pub,
		Logger:     logger,
		SiteOrigin: siteOrigin,
		Currency:   currency,
	}
}

// ParseAmount converts a client-supplied major-unit amount string to minor
// currency units. Non-numeric, non-positive, or absurdly large amounts are
// rejected.
func ParseAmount(s string) (int64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if amount > maxDonationMajor {
		return 0, ErrInvalidAmount
	}
	return int64(math.Round(amount * 100)), nil
}

// CreateCheckout opens a hosted checkout session for a one-time donation
// and returns its redirect URL.
func (s *FundingService) CreateCheckout(ctx context.Context, donorName, donorEmail, amount string) (string, error) {
	minor, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	session, err := s.Gateway.CreateCheckout(ctx, payments.CreateCheckoutInput{
		DonorName:   donorName,
		DonorEmail:  donorEmail,
		AmountMinor: minor,
		Currency:    s.Currency,
		SuccessURL:  s.SiteOrigin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.SiteOrigin + "/payment-cancelled",
	})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// Confirm retrieves the session from the processor and records the payment.
// The returned bool reports whether this call inserted the record: false
// means either the session was not paid (payment == nil) or the payment was
// already recorded by an earlier or concurrent confirmation.
func (s *FundingService) Confirm(ctx context.Context, sessionID string) (*entity.Payment, bool, error) {
	session, err := s.Gateway.GetCheckout(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	txID := session.PaymentIntent
	if txID == "" {
		txID = session.ID
	}

	if existing, err := s.Repo.FindByTransactionID(ctx, txID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, false, err
	}

	if session.PaymentStatus != payments.StatusPaid {
		return nil, false, nil
	}

	p := &entity.Payment{
		TransactionID: txID,
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
		DonorName:     session.DonorName,
		DonorEmail:    session.DonorEmail,
		PaymentStatus: session.PaymentStatus,
		PaidAt:        time.Now().UTC(),
	}
	if err := s.Repo.Insert(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// A concurrent confirmation for the same session won the insert.
			existing, ferr := s.Repo.FindByTransactionID(ctx, txID)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	s.enqueueReceipt(ctx, p)
	return p, true, nil
}

func (s *FundingService) ListPayments(ctx context.Context) ([]entity.Payment, error) {
	return s.Repo.FindAll(ctx)
}

// enqueueReceipt publishes a receipt job, best effort. A lost receipt never
// fails the confirmation.
func (s *FundingService) enqueueReceipt(ctx context.Context, p *entity.Payment) {
	if s.Pub == nil || p.DonorEmail == "" {
		return
	}
	job := mailer.ReceiptJob{
		To:            p.DonorEmail,
		DonorName:     p.DonorName,
		Amount:        p.Amount,
		Currency:      p.Currency,
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt,
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("transaction_id", p.TransactionID).Warn("failed to enqueue receipt")
	}
}
