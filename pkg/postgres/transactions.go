package postgres

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// WithinTransaction runs fn in a database transaction. Operations of this
// package called with the context passed to fn join the transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
// Nested calls reuse the outer transaction.
func (p *Postgres) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return p.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or the pool connection.
func (p *Postgres) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return p.DB().WithContext(ctx)
}
