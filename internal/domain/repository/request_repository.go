package repository

import (
	"context"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
)

// RequestFilter holds the optional public-search criteria. Empty fields
// impose no constraint; set fields combine as a logical AND.
type RequestFilter struct {
	BloodGroup string
	District   string
	Upazila    string
	Status     string
}

// RequestRepository defines the persistence operations for donation requests.
type RequestRepository interface {
	Insert(ctx context.Context, r *entity.DonationRequest) error
	// FindByID returns ErrNotFound for absent or malformed identifiers.
	FindByID(ctx context.Context, id string) (*entity.DonationRequest, error)
	// FindRecent returns the most recently created requests system-wide,
	// newest first.
	FindRecent(ctx context.Context, limit int64) ([]entity.DonationRequest, error)
	// FindByRequester returns one page of the requester's records plus the
	// total count of everything matching the filter, not just the page.
	FindByRequester(ctx context.Context, email string, status *entity.RequestStatus, page, size int64) ([]entity.DonationRequest, int64, error)
	UpdateStatusByID(ctx context.Context, id string, status entity.RequestStatus) error
	Search(ctx context.Context, f RequestFilter) ([]entity.DonationRequest, error)
	FindAll(ctx context.Context) ([]entity.DonationRequest, error)
}
