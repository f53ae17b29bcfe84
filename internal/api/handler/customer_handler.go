package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/utilibill/billing-system/internal/api/middleware"
	"github.com/utilibill/billing-system/internal/core/ports"
)

// CustomerHandler handles the CUSTOMER-gated self-service endpoints. The
// customer record is resolved from the session, never from request input.
type CustomerHandler struct {
	customers ports.CustomerService
}

func NewCustomerHandler(customers ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// GetProfile returns the caller's own customer profile.
//
// @Summary      Get own profile
// @Tags         customer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  customerResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/customer/profile [get]
func (h *CustomerHandler) GetProfile(c echo.Context) error {
	customer, err := h.customers.GetProfile(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// GetMyBills returns only the caller's own bills.
//
// @Summary      Get own bills
// @Tags         customer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  billResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/customer/bills [get]
func (h *CustomerHandler) GetMyBills(c echo.Context) error {
	bills, err := h.customers.GetMyBills(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return err
	}

	out := make([]billResponse, 0, len(bills))
	for _, bill := range bills {
		out = append(out, toBillResponse(bill))
	}
	return c.JSON(http.StatusOK, out)
}
