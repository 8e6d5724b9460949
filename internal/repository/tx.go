package repository

import (
	"context"

	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// Tx is the commit/rollback half of a repository transaction
type Tx interface {
	Commit(ctx context.Context) error
	// Rollback is a no-op once the transaction has been committed
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back tx and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
