package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// InsertBatch writes a sweep's checkouts as one multi-row
	// statement, skipping ids already captured by an earlier sweep.
	// Empty batches perform no storage calls.
	InsertBatch(ctx context.Context, db *gorm.DB, checkouts []AbandonedCheckout) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) ([]AbandonedCheckout, error)
	DeleteByEmail(ctx context.Context, db *gorm.DB, email string) error
}
