package item

import "context"

// TransactionManager runs fn in a transaction. Repository calls made with the
// context passed to fn take part in it; the transaction is rolled back when fn
// returns an error.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTransactionManager runs fn directly. It serves storage without transactions.
type NoopTransactionManager struct{}

func (NoopTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
