package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/utilibill/billing-system/internal/core/domain"
	"github.com/utilibill/billing-system/internal/core/ports"
)

// AdminService implements customer management and bill generation. Every
// operation validates the ADMIN role before reading or writing anything.
type AdminService struct {
	customers ports.CustomerRepository
	bills     ports.BillRepository
	tx        ports.TxRunner
	logger    zerolog.Logger
}

func NewAdminService(
	customers ports.CustomerRepository,
	bills ports.BillRepository,
	tx ports.TxRunner,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{customers: customers, bills: bills, tx: tx, logger: logger}
}

// AddCustomer creates a customer with no linked account.
func (s *AdminService) AddCustomer(ctx context.Context, session *domain.Session, input ports.AddCustomerInput) (*domain.Customer, error) {
	if _, err := domain.RequireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}

	inUse, err := s.customers.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("add customer: %w", err)
	}
	if inUse {
		return nil, domain.ErrEmailTaken
	}

	customer, err := s.customers.Create(ctx, &domain.Customer{
		Name:      input.Name,
		Email:     input.Email,
		Address:   input.Address,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("add customer: %w", err)
	}

	s.logger.Info().Str("customer_id", customer.ID).Str("email", customer.Email).Msg("customer created")
	return customer, nil
}

func (s *AdminService) ListCustomers(ctx context.Context, session *domain.Session) ([]*domain.Customer, error) {
	if _, err := domain.RequireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.customers.FindAll(ctx)
}

// DeleteCustomer removes the customer and every bill it owns in one unit of
// work. Referential integrity: no bill may outlive its customer.
func (s *AdminService) DeleteCustomer(ctx context.Context, session *domain.Session, id string) error {
	if _, err := domain.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return err
	}

	var removed int64
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		removed, txErr = s.bills.DeleteByCustomerID(ctx, customer.ID)
		if txErr != nil {
			return txErr
		}
		return s.customers.Delete(ctx, customer.ID)
	})
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	s.logger.Info().Str("customer_id", customer.ID).Int64("bills_removed", removed).Msg("customer deleted")
	return nil
}

// GenerateBill computes the tiered amount for the consumed units and
// persists a new bill stamped with today's date.
func (s *AdminService) GenerateBill(ctx context.Context, session *domain.Session, customerID string, unitsConsumed float64) (*domain.Bill, error) {
	if _, err := domain.RequireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if unitsConsumed < 1 {
		return nil, domain.ErrInvalidUnits
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bill, err := s.bills.Create(ctx, &domain.Bill{
		CustomerID:    customer.ID,
		UnitsConsumed: unitsConsumed,
		Amount:        domain.CalculateAmount(unitsConsumed),
		BillDate:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return nil, fmt.Errorf("generate bill: %w", err)
	}

	s.logger.Info().
		Str("bill_id", bill.ID).
		Str("customer_id", customer.ID).
		Float64("units", unitsConsumed).
		Float64("amount", bill.Amount).
		Msg("bill generated")

	return bill, nil
}

// ListBills returns every bill system-wide, each joined with its owning
// customer.
func (s *AdminService) ListBills(ctx context.Context, session *domain.Session) ([]ports.BillWithCustomer, error) {
	if _, err := domain.RequireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}

	bills, err := s.bills.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	customers, err := s.customers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	byID := make(map[string]*domain.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	out := make([]ports.BillWithCustomer, 0, len(bills))
	for _, b := range bills {
		out = append(out, ports.BillWithCustomer{Bill: b, Customer: byID[b.CustomerID]})
	}
	return out, nil
}
