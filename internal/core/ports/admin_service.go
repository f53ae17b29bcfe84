package ports

import (
	"context"

	"github.com/utilibill/billing-system/internal/core/domain"
)

// AddCustomerInput carries the fields for an admin-created customer. The
// resulting record has no linked account.
type AddCustomerInput struct {
	Name    string
	Email   string
	Address string
}

// BillWithCustomer is the admin list view: each bill joined with its
// owning customer.
type BillWithCustomer struct {
	Bill     *domain.Bill
	Customer *domain.Customer
}

// AdminService defines the ADMIN-gated operations. Every call validates the
// session role before touching persisted state.
type AdminService interface {
	AddCustomer(ctx context.Context, session *domain.Session, input AddCustomerInput) (*domain.Customer, error)
	ListCustomers(ctx context.Context, session *domain.Session) ([]*domain.Customer, error)
	// DeleteCustomer removes the customer and all of its bills atomically.
	DeleteCustomer(ctx context.Context, session *domain.Session, id string) error
	GenerateBill(ctx context.Context, session *domain.Session, customerID string, unitsConsumed float64) (*domain.Bill, error)
	ListBills(ctx context.Context, session *domain.Session) ([]BillWithCustomer, error)
}
