package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes every repository relies on: the unique
// username and email constraints that back the duplicate checks, and the
// bill lookup index. Called once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := NewCustomerRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("customers indexes: %w", err)
	}
	if err := NewBillRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("bills indexes: %w", err)
	}
	return nil
}
