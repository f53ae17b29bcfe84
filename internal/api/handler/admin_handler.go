package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/utilibill/billing-system/internal/api/metrics"
	"github.com/utilibill/billing-system/internal/api/middleware"
	"github.com/utilibill/billing-system/internal/core/ports"
)

// AdminHandler handles the ADMIN-gated customer and bill endpoints.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// AddCustomer creates a customer with no linked account.
//
// @Summary      Add a customer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCustomerRequest  true  "Customer details"
// @Success      201   {object}  customerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/customers [post]
func (h *AdminHandler) AddCustomer(c echo.Context) error {
	var req addCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.admin.AddCustomer(c.Request().Context(), middleware.SessionFromContext(c), ports.AddCustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return err
	}

	metrics.CustomersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// ListCustomers returns every customer.
//
// @Summary      List customers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  customerResponse
// @Router       /api/admin/customers [get]
func (h *AdminHandler) ListCustomers(c echo.Context) error {
	customers, err := h.admin.ListCustomers(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return err
	}

	out := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, toCustomerResponse(customer))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteCustomer removes a customer and all of its bills.
//
// @Summary      Delete a customer
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/customers/{id} [delete]
func (h *AdminHandler) DeleteCustomer(c echo.Context) error {
	if err := h.admin.DeleteCustomer(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id")); err != nil {
		return err
	}
	metrics.CustomersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Customer deleted successfully"})
}

// GenerateBill computes the tiered amount for the consumed units and stores
// a new bill for the customer.
//
// @Summary      Generate a bill
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateBillRequest  true  "Customer id and units consumed"
// @Success      201   {object}  billResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/bills [post]
func (h *AdminHandler) GenerateBill(c echo.Context) error {
	var req generateBillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "customerId and unitsConsumed are required numeric fields")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bill, err := h.admin.GenerateBill(c.Request().Context(), middleware.SessionFromContext(c), req.CustomerID, req.UnitsConsumed)
	if err != nil {
		return err
	}

	metrics.BillsGeneratedTotal.Inc()
	metrics.BillAmount.Observe(bill.Amount)

	return c.JSON(http.StatusCreated, toBillResponse(bill))
}

// ListBills returns every bill system-wide with its owning customer.
//
// @Summary      List all bills
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  adminBillResponse
// @Router       /api/admin/bills [get]
func (h *AdminHandler) ListBills(c echo.Context) error {
	items, err := h.admin.ListBills(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return err
	}

	out := make([]adminBillResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toAdminBillResponse(item))
	}
	return c.JSON(http.StatusOK, out)
}
