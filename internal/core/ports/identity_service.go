package ports

import (
	"context"

	"github.com/utilibill/billing-system/internal/core/domain"
)

// RegisterInput carries a registration request. Name, Email and Address are
// required when Role resolves to CUSTOMER.
type RegisterInput struct {
	Username string
	Password string
	Role     string
	Name     string
	Email    string
	Address  string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Message  string
	Username string
	Role     domain.Role
}

// SessionInfo is the payload of a session check.
type SessionInfo struct {
	LoggedIn bool
	Username string
	Role     domain.Role
}

// IdentityService owns registration, login, logout and session checks.
type IdentityService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	// Login returns a signed session token alongside the result.
	Login(ctx context.Context, username, password string) (string, *AuthResult, error)
	// Logout destroys the session; safe to call with an unknown id.
	Logout(ctx context.Context, sessionID string) error
	// CheckSession reads identity from the session only, never persistence.
	CheckSession(session *domain.Session) (*SessionInfo, error)
}
