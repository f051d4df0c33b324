package database

import (
	"context"

	"gorm.io/gorm"
)

// TxFunc runs inside a transaction and receives the transaction handle.
type TxFunc func(tx *gorm.DB) error

// WithTransaction runs fn in a transaction bound to ctx. The transaction is
// committed when fn returns nil and rolled back when it returns an error or panics.
func WithTransaction(ctx context.Context, db *gorm.DB, fn TxFunc) error {
	return db.WithContext(ctx).Transaction(fn)
}

// WithTransactionResult is WithTransaction for functions that produce a value.
func WithTransactionResult[T any](ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) (T, error)) (T, error) {
	var result T
	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		var err error
		result, err = fn(tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
