package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/utilibill/billing-system/internal/api/metrics"
	"github.com/utilibill/billing-system/internal/api/middleware"
	"github.com/utilibill/billing-system/internal/core/ports"
)

// AuthHandler handles registration, login, logout and session checks.
type AuthHandler struct {
	identity  ports.IdentityService
	jwtSecret string
}

func NewAuthHandler(identity ports.IdentityService, jwtSecret string) *AuthHandler {
	return &AuthHandler{identity: identity, jwtSecret: jwtSecret}
}

// Register creates a new account. CUSTOMER registrations require name,
// email and address and create a linked customer profile.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.identity.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(res.Role)).Inc()

	return c.JSON(http.StatusCreated, authResponse{
		Message:  res.Message,
		Username: res.Username,
		Role:     string(res.Role),
	})
}

// Login validates credentials and establishes a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, res, err := h.identity.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{
		Message:  res.Message,
		Username: res.Username,
		Role:     string(res.Role),
		Token:    token,
	})
}

// Logout destroys the caller's session. Succeeds even when no valid session
// accompanies the request.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Lenient parse: a missing or invalid token still logs out cleanly.
	if sid, err := middleware.SessionIDFromRequest(c.Request(), h.jwtSecret); err == nil {
		if err := h.identity.Logout(c.Request().Context(), sid); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Check reports the current session identity.
//
// @Summary      Check session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/check [get]
func (h *AuthHandler) Check(c echo.Context) error {
	info, err := h.identity.CheckSession(middleware.SessionFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		LoggedIn: info.LoggedIn,
		Username: info.Username,
		Role:     string(info.Role),
	})
}
