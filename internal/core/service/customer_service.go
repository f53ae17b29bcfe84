package service

import (
	"context"
	"fmt"

	"github.com/utilibill/billing-system/internal/core/domain"
	"github.com/utilibill/billing-system/internal/core/ports"
)

// CustomerService implements the self-service operations. The customer
// record is always resolved from the session's user id, so a caller can
// never reach another customer's data.
type CustomerService struct {
	customers ports.CustomerRepository
	bills     ports.BillRepository
}

func NewCustomerService(customers ports.CustomerRepository, bills ports.BillRepository) *CustomerService {
	return &CustomerService{customers: customers, bills: bills}
}

// GetProfile returns the customer linked to the caller's account. An
// account with no linked profile (an ADMIN, or inconsistent data) yields
// ErrCustomerNotFound.
func (s *CustomerService) GetProfile(ctx context.Context, session *domain.Session) (*domain.Customer, error) {
	userID, err := domain.RequireRole(session, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return s.customers.FindByUserID(ctx, userID)
}

// GetMyBills returns only the caller's own bills.
func (s *CustomerService) GetMyBills(ctx context.Context, session *domain.Session) ([]*domain.Bill, error) {
	userID, err := domain.RequireRole(session, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	bills, err := s.bills.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("get my bills: %w", err)
	}
	return bills, nil
}
