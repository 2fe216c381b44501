// Package db carries the transaction plumbing shared by the gorm
// repositories. A running transaction travels inside the context, so use
// cases and services stay free of gorm types while repositories still join
// the same transaction.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor opens one database transaction around a function and
// propagates it through the context. Every repository call inside the
// function joins the transaction via GetTxFromContext; an error from the
// function rolls everything back.
type GormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(database *gorm.DB) *GormTransactor {
	return &GormTransactor{db: database}
}

func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// GetTxFromContext returns the transaction carried by the context, or the
// fallback handle when the caller runs outside one. Repositories call this
// on every operation.
func GetTxFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
