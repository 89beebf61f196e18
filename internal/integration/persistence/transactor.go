// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
)

type txKey struct{}

// transactor implements the adapter.Transactor interface on top of gorm transactions.
type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new transactor instance.
func NewTransactor(db *gorm.DB) adapter.Transactor {
	return &transactor{
		db: db,
	}
}

// WithinTransaction runs fn inside a database transaction carried by the context.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// savepoint runs fn inside a savepoint of the transaction bound to ctx, so a
// failing statement rolls back to it and leaves the outer transaction usable.
// Without a transaction fn runs on db directly.
func savepoint(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx).Transaction(fn)
	}
	return fn(db.WithContext(ctx))
}

// conn returns the transaction bound to ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
