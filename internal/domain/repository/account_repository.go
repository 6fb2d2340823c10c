package repository

import (
	"context"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
)

// AccountRepository defines the persistence operations for accounts.
type AccountRepository interface {
	// Insert stores a new account. Returns ErrDuplicate when the email is taken.
	Insert(ctx context.Context, a *entity.Account) error
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindAll(ctx context.Context) ([]entity.Account, error)
	UpdateStatusByEmail(ctx context.Context, email string, status entity.AccountStatus) error
	UpdateRoleByEmail(ctx context.Context, email string, role entity.Role) error
	UpdateAvatarByEmail(ctx context.Context, email, avatarURL string) error
}
