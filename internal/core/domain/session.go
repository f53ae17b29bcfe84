package domain

import "errors"

var ErrUnauthorized = errors.New("not logged in")
var ErrForbidden = errors.New("access denied")
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side authentication context established at login
// and destroyed at logout. Services receive it as an explicit parameter;
// there is no ambient request-scoped state.
type Session struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// RequireSession returns the authenticated user id, or ErrUnauthorized when
// no session (or no user id) is present. Pure read, no side effects.
func RequireSession(s *Session) (string, error) {
	if s == nil || s.UserID == "" {
		return "", ErrUnauthorized
	}
	return s.UserID, nil
}

// RequireRole returns the authenticated user id when the session exists AND
// its role exactly matches required. A present session with the wrong role
// fails with ErrForbidden, never ErrUnauthorized.
func RequireRole(s *Session, required Role) (string, error) {
	userID, err := RequireSession(s)
	if err != nil {
		return "", err
	}
	if s.Role != required {
		return "", ErrForbidden
	}
	return userID, nil
}
