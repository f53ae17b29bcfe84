package ports

import (
	"context"

	"github.com/utilibill/billing-system/internal/core/domain"
)

// CustomerService defines the CUSTOMER-gated self-service operations. The
// caller's customer record is always resolved from the session's user id,
// never from request input.
type CustomerService interface {
	GetProfile(ctx context.Context, session *domain.Session) (*domain.Customer, error)
	GetMyBills(ctx context.Context, session *domain.Session) ([]*domain.Bill, error)
}
