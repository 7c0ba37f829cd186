package database

import (
	"context"
	"errors"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
)

// WithTransaction runs fn in a transaction bound to ctx. Returning an error rolls back.
// fn must use only the tx it receives: the test database has a single connection, and so
// does sqlite in deployment.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return errors.New("database: transaction function is nil")
	}

	err := db.WithContext(ctx).Transaction(fn)
	if err != nil {
		logger.FromContext(ctx).Debug("Transaction rolled back", "error", err)
	}
	return err
}
