package domain

import (
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")
var ErrEmailTaken = errors.New("email already registered")

// Customer is a billing subject. UserID is the optional back-reference to
// the account that owns this profile; admin-created customers have none.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
