// Package db carries a gorm handle through context so multi-step
// repository work can share a single transaction.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// RunInTransaction executes fn inside a database transaction. The
// transactional handle rides in the context passed to fn and is picked
// up by FromContext; an error from fn rolls the transaction back.
func RunInTransaction(ctx context.Context, gormDB *gorm.DB, fn func(ctx context.Context) error) error {
	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// FromContext returns the transaction bound to ctx, or the fallback
// handle with ctx applied when no transaction is running.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
