// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Transactor runs a unit of work atomically. Repositories called with the
// context passed to fn take part in the same database transaction.
type Transactor interface {
	// WithinTransaction executes fn in a transaction, committing when fn returns
	// nil and rolling back otherwise. Nested calls join the outer transaction.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
