package ports

import (
	"context"

	"github.com/utilibill/billing-system/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
