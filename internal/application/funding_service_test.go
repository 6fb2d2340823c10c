package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
	"github.com/lifedrop/lifedrop-backend/internal/domain/repository"
	"github.com/lifedrop/lifedrop-backend/internal/payments"
	"github.com/lifedrop/lifedrop-backend/internal/testutil"
)

func newFundingService(repo *testutil.FakePaymentRepo, gw *testutil.FakeGateway) *FundingService {
	return NewFundingService(repo, gw, nil, nil, "https://lifedrop.example", "usd")
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"10", 1000, false},
		{"10.50", 1050, false},
		{"0.01", 1, false},
		{"99.999", 10000, false}, // rounds to the nearest cent
		{"10000000", 1000000000, false}, // the cap itself is accepted
		{"0", 0, true},
		{"-5", 0, true},
		{"", 0, true},
		{"ten", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"10000000.01", 0, true},
		{"1e300", 0, true}, // finite but overflows any minor-unit integer
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if c.wantErr {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", c.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestCreateCheckout(t *testing.T) {
	repo := &testutil.FakePaymentRepo{}
	gw := &testutil.FakeGateway{}
	svc := newFundingService(repo, gw)
	ctx := context.Background()

	url, err := svc.CreateCheckout(ctx, "Nadia", "nadia@example.com", "25")
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if url == "" {
		t.Fatal("expected a redirect url")
	}
	if len(gw.Created) != 1 {
		t.Fatalf("gateway received %d create calls, want 1", len(gw.Created))
	}
	in := gw.Created[0]
	if in.AmountMinor != 2500 {
		t.Errorf("amount = %d minor units, want 2500", in.AmountMinor)
	}
	if in.Currency != "usd" {
		t.Errorf("currency = %q, want usd", in.Currency)
	}
	if !strings.HasPrefix(in.SuccessURL, "https://lifedrop.example/payment-success") {
		t.Errorf("success url = %q, want site-origin success page", in.SuccessURL)
	}
	if !strings.Contains(in.SuccessURL, "{CHECKOUT_SESSION_ID}") {
		t.Errorf("success url %q is missing the session-id placeholder", in.SuccessURL)
	}

	if _, err := svc.CreateCheckout(ctx, "Nadia", "nadia@example.com", "-3"); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount error = %v, want ErrInvalidAmount", err)
	}
	if len(gw.Created) != 1 {
		t.Errorf("invalid amount reached the gateway; create calls = %d", len(gw.Created))
	}
}

func TestConfirmRecordsPaidSessionOnce(t *testing.T) {
	repo := &testutil.FakePaymentRepo{}
	gw := &testutil.FakeGateway{
		Sessions: map[string]*payments.CheckoutSession{
			"cs_paid": {
				ID:            "cs_paid",
				PaymentIntent: "pi_123",
				PaymentStatus: payments.StatusPaid,
				AmountTotal:   2500,
				Currency:      "usd",
				DonorName:     "Nadia",
				DonorEmail:    "nadia@example.com",
			},
		},
	}
	svc := newFundingService(repo, gw)
	ctx := context.Background()

	p, recorded, err := svc.Confirm(ctx, "cs_paid")
	if err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
	if !recorded {
		t.Fatal("first Confirm should insert the record")
	}
	if p.TransactionID != "pi_123" {
		t.Errorf("transaction_id = %q, want the payment intent id", p.TransactionID)
	}
	if p.Amount != 25 {
		t.Errorf("amount = %v major units, want 25", p.Amount)
	}

	p2, recorded, err := svc.Confirm(ctx, "cs_paid")
	if err != nil {
		t.Fatalf("second Confirm: %v", err)
	}
	if recorded {
		t.Error("second Confirm must not insert again")
	}
	if p2 == nil || p2.TransactionID != "pi_123" {
		t.Errorf("second Confirm returned %+v, want the existing record", p2)
	}
	if len(repo.Payments) != 1 {
		t.Errorf("stored %d payments, want 1", len(repo.Payments))
	}
}

func TestConfirmUnpaidSessionStoresNothing(t *testing.T) {
	repo := &testutil.FakePaymentRepo{}
	gw := &testutil.FakeGateway{
		Sessions: map[string]*payments.CheckoutSession{
			"cs_open": {
				ID:            "cs_open",
				PaymentStatus: "unpaid",
				AmountTotal:   2500,
				Currency:      "usd",
			},
		},
	}
	svc := newFundingService(repo, gw)

	p, recorded, err := svc.Confirm(context.Background(), "cs_open")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if p != nil || recorded {
		t.Errorf("got payment=%+v recorded=%v, want nil and false for an unpaid session", p, recorded)
	}
	if len(repo.Payments) != 0 {
		t.Errorf("stored %d payments, want 0", len(repo.Payments))
	}
}

func TestConfirmFallsBackToSessionID(t *testing.T) {
	repo := &testutil.FakePaymentRepo{}
	gw := &testutil.FakeGateway{
		Sessions: map[string]*payments.CheckoutSession{
			"cs_nointent": {
				ID:            "cs_nointent",
				PaymentStatus: payments.StatusPaid,
				AmountTotal:   500,
				Currency:      "usd",
			},
		},
	}
	svc := newFundingService(repo, gw)

	p, recorded, err := svc.Confirm(context.Background(), "cs_nointent")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !recorded {
		t.Fatal("expected the payment to be recorded")
	}
	if p.TransactionID != "cs_nointent" {
		t.Errorf("transaction_id = %q, want the session id fallback", p.TransactionID)
	}
}

// racedPaymentRepo replays the interleaving of two concurrent confirmations:
// the pre-insert lookup misses until both callers have attempted their
// insert, so the second caller takes the duplicate-insert recovery path
// instead of short-circuiting on the existing record.
type racedPaymentRepo struct {
	testutil.FakePaymentRepo
}

func (r *racedPaymentRepo) FindByTransactionID(ctx context.Context, txID string) (*entity.Payment, error) {
	if r.Inserts < 2 {
		return nil, repository.ErrNotFound
	}
	return r.FakePaymentRepo.FindByTransactionID(ctx, txID)
}

func TestConfirmDuplicateInsertRecovers(t *testing.T) {
	repo := &racedPaymentRepo{}
	gw := &testutil.FakeGateway{
		Sessions: map[string]*payments.CheckoutSession{
			"cs_paid": {
				ID:            "cs_paid",
				PaymentIntent: "pi_123",
				PaymentStatus: payments.StatusPaid,
				AmountTotal:   2500,
				Currency:      "usd",
				DonorEmail:    "nadia@example.com",
			},
		},
	}
	svc := NewFundingService(repo, gw, nil, nil, "https://lifedrop.example", "usd")
	ctx := context.Background()

	p1, recorded, err := svc.Confirm(ctx, "cs_paid")
	if err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
	if !recorded || p1.TransactionID != "pi_123" {
		t.Fatalf("first Confirm: recorded=%v payment=%+v, want a fresh pi_123 record", recorded, p1)
	}

	// The second caller also misses the lookup, loses the insert, and must
	// come back with the winner's record.
	p2, recorded, err := svc.Confirm(ctx, "cs_paid")
	if err != nil {
		t.Fatalf("second Confirm: %v", err)
	}
	if recorded {
		t.Error("second Confirm reported recorded=true after losing the insert")
	}
	if p2 == nil || p2.TransactionID != "pi_123" {
		t.Errorf("second Confirm returned %+v, want the existing record", p2)
	}
	if repo.Inserts != 2 {
		t.Errorf("insert attempts = %d, want both callers to have tried", repo.Inserts)
	}
	if len(repo.Payments) != 1 {
		t.Errorf("stored %d payments, want exactly 1", len(repo.Payments))
	}
}

func TestConfirmConcurrentCallsStoreOnePayment(t *testing.T) {
	repo := &testutil.FakePaymentRepo{}
	gw := &testutil.FakeGateway{
		Sessions: map[string]*payments.CheckoutSession{
			"cs_paid": {
				ID:            "cs_paid",
				PaymentIntent: "pi_123",
				PaymentStatus: payments.StatusPaid,
				AmountTotal:   2500,
				Currency:      "usd",
			},
		},
	}
	svc := newFundingService(repo, gw)

	const callers = 8
	var wg sync.WaitGroup
	var recordedCount atomic.Int32
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, recorded, err := svc.Confirm(context.Background(), "cs_paid")
			if err != nil {
				errs <- err
				return
			}
			if p == nil || p.TransactionID != "pi_123" {
				errs <- fmt.Errorf("got payment %+v, want the pi_123 record", p)
				return
			}
			if recorded {
				recordedCount.Add(1)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	if got := recordedCount.Load(); got != 1 {
		t.Errorf("recorded=true reported by %d callers, want exactly 1", got)
	}
	if len(repo.Payments) != 1 {
		t.Errorf("stored %d payments, want exactly 1", len(repo.Payments))
	}
}

func TestConfirmUnknownSession(t *testing.T) {
	repo := &testutil.FakePaymentRepo{}
	gw := &testutil.FakeGateway{}
	svc := newFundingService(repo, gw)

	if _, _, err := svc.Confirm(context.Background(), "cs_ghost"); err == nil {
		t.Fatal("expected an error for an unknown session")
	}
}
