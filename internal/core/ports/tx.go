package ports

import "context"

// TxRunner executes fn inside one atomic unit of work. Multi-step mutations
// (customer-role registration, customer delete cascade) must be all-or-nothing:
// if fn returns an error, no partial state becomes visible.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
