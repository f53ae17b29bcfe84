package ports

import (
	"context"

	"github.com/utilibill/billing-system/internal/core/domain"
)

// SessionStore holds server-side sessions. Save applies the store's TTL;
// Find on a missing or expired session returns domain.ErrSessionNotFound.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	// Delete is a no-op when the session does not exist.
	Delete(ctx context.Context, id string) error
}
