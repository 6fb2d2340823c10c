package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
	"github.com/lifedrop/lifedrop-backend/internal/testutil"
)

func newRequestService(repo *testutil.FakeRequestRepo) *RequestService {
	return NewRequestService(repo, nil, nil, "")
}

func TestCreateRequestBindsVerifiedRequester(t *testing.T) {
	repo := &testutil.FakeRequestRepo{}
	svc := newRequestService(repo)

	start := time.Now().UTC()
	req, err := svc.Create(context.Background(), "karim@example.com", CreateRequestInput{
		RequesterName: "Karim",
		RecipientName: "Salma",
		BloodGroup:    "B-",
		District:      "Chattogram",
		Upazila:       "Hathazari",
		Hospital:      "CMCH",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.RequesterEmail != "karim@example.com" {
		t.Errorf("requester_email = %q, want the verified caller", req.RequesterEmail)
	}
	if req.Status != entity.RequestPending {
		t.Errorf("status = %q, want pending", req.Status)
	}
	if req.CreatedAt.Before(start) {
		t.Errorf("created_at %v predates creation start %v", req.CreatedAt, start)
	}
	if req.ID.IsZero() {
		t.Error("expected an assigned id")
	}
}

func TestGetByID(t *testing.T) {
	repo := &testutil.FakeRequestRepo{}
	svc := newRequestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "karim@example.com", CreateRequestInput{RecipientName: "Salma", BloodGroup: "B-"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RecipientName != "Salma" {
		t.Errorf("recipient = %q, want Salma", got.RecipientName)
	}

	if _, err := svc.GetByID(ctx, "not-a-hex-id"); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("malformed id error = %v, want ErrRequestNotFound", err)
	}
	if _, err := svc.GetByID(ctx, "65f000000000000000000000"); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("absent id error = %v, want ErrRequestNotFound", err)
	}
}

func TestRecentIsGlobalAndCapped(t *testing.T) {
	repo := &testutil.FakeRequestRepo{}
	svc := newRequestService(repo)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		req := &entity.DonationRequest{
			RequesterEmail: fmt.Sprintf("donor%d@example.com", i),
			RecipientName:  fmt.Sprintf("patient-%d", i),
			Status:         entity.RequestPending,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Insert(ctx, req); err != nil {
			t.Fatalf("seed insert: %v", err)
		}
	}

	recent, err := svc.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len(recent) = %d, want 3", len(recent))
	}
	// Newest first, regardless of requester.
	for i, want := range []string{"patient-4", "patient-3", "patient-2"} {
		if recent[i].RecipientName != want {
			t.Errorf("recent[%d] = %q, want %q", i, recent[i].RecipientName, want)
		}
	}
}

func TestListMinePagination(t *testing.T) {
	repo := &testutil.FakeRequestRepo{}
	svc := newRequestService(repo)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		if err := repo.Insert(ctx, &entity.DonationRequest{
			RequesterEmail: "karim@example.com",
			RecipientName:  fmt.Sprintf("mine-%d", i),
			Status:         entity.RequestPending,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("seed insert: %v", err)
		}
	}
	if err := repo.Insert(ctx, &entity.DonationRequest{
		RequesterEmail: "other@example.com",
		Status:         entity.RequestPending,
		CreatedAt:      base.Add(time.Hour),
	}); err != nil {
		t.Fatalf("seed insert: %v", err)
	}

	page0, total, err := svc.ListMine(ctx, "karim@example.com", 0, 3, "")
	if err != nil {
		t.Fatalf("ListMine page 0: %v", err)
	}
	if total != 7 {
		t.Errorf("total = %d, want 7", total)
	}
	if len(page0) != 3 {
		t.Errorf("len(page0) = %d, want 3", len(page0))
	}
	if page0[0].RecipientName != "mine-6" {
		t.Errorf("page0[0] = %q, want the newest of the caller's requests", page0[0].RecipientName)
	}

	page2, total, err := svc.ListMine(ctx, "karim@example.com", 2, 3, "")
	if err != nil {
		t.Fatalf("ListMine page 2: %v", err)
	}
	if total != 7 {
		t.Errorf("total = %d, want 7", total)
	}
	if len(page2) != 1 {
		t.Errorf("len(page2) = %d, want 1", len(page2))
	}

	beyond, total, err := svc.ListMine(ctx, "karim@example.com", 9, 3, "")
	if err != nil {
		t.Fatalf("ListMine beyond range: %v", err)
	}
	if total != 7 || len(beyond) != 0 {
		t.Errorf("beyond-range page: len=%d total=%d, want 0 and 7", len(beyond), total)
	}

	// Negative page and oversized size fall back to defaults.
	fallback, _, err := svc.ListMine(ctx, "karim@example.com", -1, 500, "")
	if err != nil {
		t.Fatalf("ListMine with bad paging: %v", err)
	}
	if len(fallback) != 7 {
		t.Errorf("fallback page len = %d, want all 7 under default size", len(fallback))
	}

	if _, _, err := svc.ListMine(ctx, "karim@example.com", 0, 10, "cancelled"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("unknown status filter error = %v, want ErrInvalidValue", err)
	}
}

func TestSetRequestStatus(t *testing.T) {
	repo := &testutil.FakeRequestRepo{}
	svc := newRequestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "karim@example.com", CreateRequestInput{RecipientName: "Salma"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created.ID.Hex()

	if err := svc.SetStatus(ctx, id, "finished"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("unknown status error = %v, want ErrInvalidValue", err)
	}
	if err := svc.SetStatus(ctx, id, "done"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pending->done error = %v, want ErrInvalidTransition", err)
	}
	if err := svc.SetStatus(ctx, "65f000000000000000000000", "inprogress"); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("absent id error = %v, want ErrRequestNotFound", err)
	}

	if err := svc.SetStatus(ctx, id, "inprogress"); err != nil {
		t.Fatalf("pending->inprogress: %v", err)
	}
	if err := svc.SetStatus(ctx, id, "done"); err != nil {
		t.Fatalf("inprogress->done: %v", err)
	}
	// done is terminal.
	if err := svc.SetStatus(ctx, id, "inprogress"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("done->inprogress error = %v, want ErrInvalidTransition", err)
	}
}

func TestSearchFiltersCombineAsAND(t *testing.T) {
	repo := &testutil.FakeRequestRepo{}
	svc := newRequestService(repo)
	ctx := context.Background()

	seed := []entity.DonationRequest{
		{BloodGroup: "O+", District: "Dhaka", Upazila: "Savar", Status: entity.RequestPending},
		{BloodGroup: "O+", District: "Dhaka", Upazila: "Dhamrai", Status: entity.RequestDone},
		{BloodGroup: "A-", District: "Dhaka", Upazila: "Savar", Status: entity.RequestPending},
		{BloodGroup: "O+", District: "Khulna", Upazila: "Savar", Status: entity.RequestPending},
	}
	for i := range seed {
		if err := repo.Insert(ctx, &seed[i]); err != nil {
			t.Fatalf("seed insert: %v", err)
		}
	}

	all, err := svc.Search(ctx, "", "", "", "")
	if err != nil {
		t.Fatalf("Search all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("empty filter matched %d, want 4", len(all))
	}

	got, err := svc.Search(ctx, "O+", "Dhaka", "", "")
	if err != nil {
		t.Fatalf("Search O+/Dhaka: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("O+ AND Dhaka matched %d, want 2", len(got))
	}

	got, err = svc.Search(ctx, "O+", "Dhaka", "Savar", "pending")
	if err != nil {
		t.Fatalf("Search full filter: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("full filter matched %d, want 1", len(got))
	}
}
