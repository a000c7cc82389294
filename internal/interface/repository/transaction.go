package repository

import (
	"context"

	"flightsnap-service/internal/domain/repository"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor implements the Transactor interface on gorm transactions
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a new GORM transactor
func NewGormTransactor(db *gorm.DB) repository.Transactor {
	return &GormTransactor{
		db: db,
	}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// Calls nested in an open transaction join it.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
