package repository

import (
	"context"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
)

// PaymentRepository defines the persistence operations for payment records.
type PaymentRepository interface {
	// Insert stores a new payment. Returns ErrDuplicate when a record with
	// the same transaction id already exists, which callers rely on to keep
	// payment confirmation idempotent under concurrent delivery.
	Insert(ctx context.Context, p *entity.Payment) error
	FindByTransactionID(ctx context.Context, txID string) (*entity.Payment, error)
	FindAll(ctx context.Context) ([]entity.Payment, error)
}
