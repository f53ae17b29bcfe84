package handler

import (
	"time"

	"github.com/utilibill/billing-system/internal/core/domain"
	"github.com/utilibill/billing-system/internal/core/ports"
)

// Wire format follows the original frontend contract: camelCase field names,
// bill dates as plain calendar dates.

const billDateLayout = "2006-01-02"

// errorResponse documents the error envelope rendered by the central error
// handler.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Requests ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required"`
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type addCustomerRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address" validate:"required"`
}

type generateBillRequest struct {
	CustomerID    string  `json:"customerId"    validate:"required"`
	UnitsConsumed float64 `json:"unitsConsumed" validate:"required,gte=1"`
}

// --- Responses ---

type messageResponse struct {
	Message string `json:"message"`
}

type authResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token,omitempty"`
}

type sessionResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type customerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	UserID    string `json:"userId,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type billResponse struct {
	ID            string  `json:"id"`
	CustomerID    string  `json:"customerId"`
	UnitsConsumed float64 `json:"unitsConsumed"`
	Amount        float64 `json:"amount"`
	BillDate      string  `json:"billDate"`
}

type adminBillResponse struct {
	billResponse
	Customer *customerResponse `json:"customer,omitempty"`
}

// --- Mapping helpers ---

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toBillResponse(b *domain.Bill) billResponse {
	return billResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		UnitsConsumed: b.UnitsConsumed,
		Amount:        b.Amount,
		BillDate:      b.BillDate.UTC().Format(billDateLayout),
	}
}

func toAdminBillResponse(item ports.BillWithCustomer) adminBillResponse {
	out := adminBillResponse{billResponse: toBillResponse(item.Bill)}
	if item.Customer != nil {
		c := toCustomerResponse(item.Customer)
		out.Customer = &c
	}
	return out
}
