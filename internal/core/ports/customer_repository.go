package ports

import (
	"context"

	"github.com/utilibill/billing-system/internal/core/domain"
)

// CustomerRepository defines persistence operations for billing subjects.
type CustomerRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	// FindByUserID resolves the customer profile linked to an account.
	FindByUserID(ctx context.Context, userID string) (*domain.Customer, error)
	FindAll(ctx context.Context) ([]*domain.Customer, error)
	// Delete removes the customer record only; dependent bills are removed
	// by the service inside the same unit of work.
	Delete(ctx context.Context, id string) error
}
