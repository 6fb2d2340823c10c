// Package testutil provides in-memory doubles for the repository, identity,
// and payment-gateway boundaries so service and handler tests run without
// MongoDB, Firebase, or Stripe.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
	"github.com/lifedrop/lifedrop-backend/internal/domain/repository"
	"github.com/lifedrop/lifedrop-backend/internal/payments"
)

// StaticVerifier resolves a fixed set of tokens to emails.
type StaticVerifier struct {
	Tokens map[string]string // token -> email
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	if email, ok := v.Tokens[token]; ok {
		return email, nil
	}
	return "", fmt.Errorf("unknown token %q", token)
}

// FakeAccountRepo is an in-memory repository.AccountRepository.
type FakeAccountRepo struct {
	mu       sync.Mutex
	Accounts []entity.Account
}

func (f *FakeAccountRepo) Insert(_ context.Context, a *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.Accounts {
		if existing.Email == a.Email {
			return repository.ErrDuplicate
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.Accounts = append(f.Accounts, *a)
	return nil
}

func (f *FakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Accounts {
		if f.Accounts[i].Email == email {
			a := f.Accounts[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeAccountRepo) FindAll(_ context.Context) ([]entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Account, len(f.Accounts))
	copy(out, f.Accounts)
	return out, nil
}

func (f *FakeAccountRepo) UpdateStatusByEmail(_ context.Context, email string, status entity.AccountStatus) error {
	return f.update(email, func(a *entity.Account) { a.Status = status })
}

func (f *FakeAccountRepo) UpdateRoleByEmail(_ context.Context, email string, role entity.Role) error {
	return f.update(email, func(a *entity.Account) { a.Role = role })
}

func (f *FakeAccountRepo) UpdateAvatarByEmail(_ context.Context, email, avatarURL string) error {
	return f.update(email, func(a *entity.Account) { a.AvatarURL = avatarURL })
}

func (f *FakeAccountRepo) update(email string, fn func(*entity.Account)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Accounts {
		if f.Accounts[i].Email == email {
			fn(&f.Accounts[i])
			return nil
		}
	}
	return repository.ErrNotFound
}

// FakeRequestRepo is an in-memory repository.RequestRepository.
type FakeRequestRepo struct {
	mu       sync.Mutex
	Requests []entity.DonationRequest
}

func (f *FakeRequestRepo) Insert(_ context.Context, r *entity.DonationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	f.Requests = append(f.Requests, *r)
	return nil
}

func (f *FakeRequestRepo) FindByID(_ context.Context, id string) (*entity.DonationRequest, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Requests {
		if f.Requests[i].ID.Hex() == id {
			r := f.Requests[i]
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeRequestRepo) FindRecent(_ context.Context, limit int64) ([]entity.DonationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sorted := f.sortedByCreatedDesc()
	if int64(len(sorted)) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (f *FakeRequestRepo) FindByRequester(_ context.Context, email string, status *entity.RequestStatus, page, size int64) ([]entity.DonationRequest, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []entity.DonationRequest{}
	for _, r := range f.sortedByCreatedDesc() {
		if r.RequesterEmail != email {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		matched = append(matched, r)
	}
	total := int64(len(matched))
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *FakeRequestRepo) UpdateStatusByID(_ context.Context, id string, status entity.RequestStatus) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repository.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Requests {
		if f.Requests[i].ID.Hex() == id {
			f.Requests[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *FakeRequestRepo) Search(_ context.Context, filter repository.RequestFilter) ([]entity.DonationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.DonationRequest{}
	for _, r := range f.Requests {
		if filter.BloodGroup != "" && r.BloodGroup != filter.BloodGroup {
			continue
		}
		if filter.District != "" && r.District != filter.District {
			continue
		}
		if filter.Upazila != "" && r.Upazila != filter.Upazila {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *FakeRequestRepo) FindAll(_ context.Context) ([]entity.DonationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.DonationRequest, len(f.Requests))
	copy(out, f.Requests)
	return out, nil
}

func (f *FakeRequestRepo) sortedByCreatedDesc() []entity.DonationRequest {
	sorted := make([]entity.DonationRequest, len(f.Requests))
	copy(sorted, f.Requests)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// FakePaymentRepo is an in-memory repository.PaymentRepository.
type FakePaymentRepo struct {
	mu       sync.Mutex
	Payments []entity.Payment
	Inserts  int // total Insert calls, including rejected duplicates
}

func (f *FakePaymentRepo) Insert(_ context.Context, p *entity.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Inserts++
	for _, existing := range f.Payments {
		if existing.TransactionID == p.TransactionID {
			return repository.ErrDuplicate
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.Payments = append(f.Payments, *p)
	return nil
}

func (f *FakePaymentRepo) FindByTransactionID(_ context.Context, txID string) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Payments {
		if f.Payments[i].TransactionID == txID {
			p := f.Payments[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakePaymentRepo) FindAll(_ context.Context) ([]entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Payment, len(f.Payments))
	copy(out, f.Payments)
	return out, nil
}

// FakeGateway is an in-memory payments.Gateway.
type FakeGateway struct {
	mu       sync.Mutex
	Created  []payments.CreateCheckoutInput
	Sessions map[string]*payments.CheckoutSession
}

func (f *FakeGateway) CreateCheckout(_ context.Context, in payments.CreateCheckoutInput) (*payments.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, in)
	id := fmt.Sprintf("cs_test_%d", len(f.Created))
	s := &payments.CheckoutSession{
		ID:          id,
		URL:         "https://checkout.test/pay/" + id,
		AmountTotal: in.AmountMinor,
		Currency:    in.Currency,
		DonorName:   in.DonorName,
		DonorEmail:  in.DonorEmail,
	}
	if f.Sessions == nil {
		f.Sessions = map[string]*payments.CheckoutSession{}
	}
	f.Sessions[id] = s
	return s, nil
}

func (f *FakeGateway) GetCheckout(_ context.Context, sessionID string) (*payments.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.Sessions[sessionID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, fmt.Errorf("no such session %q", sessionID)
}

var (
	_ repository.AccountRepository = (*FakeAccountRepo)(nil)
	_ repository.RequestRepository = (*FakeRequestRepo)(nil)
	_ repository.PaymentRepository = (*FakePaymentRepo)(nil)
	_ payments.Gateway             = (*FakeGateway)(nil)
)
