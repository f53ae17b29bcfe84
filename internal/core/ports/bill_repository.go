package ports

import (
	"context"

	"github.com/utilibill/billing-system/internal/core/domain"
)

// BillRepository defines persistence operations for bills. Bills are
// append-only; the only delete path is the customer cascade.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) (*domain.Bill, error)
	FindAll(ctx context.Context) ([]*domain.Bill, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Bill, error)
	// DeleteByCustomerID removes every bill owned by the customer and
	// returns the number removed.
	DeleteByCustomerID(ctx context.Context, customerID string) (int64, error)
}
