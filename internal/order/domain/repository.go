package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Insert writes one order and its line items, the webhook path.
	Insert(ctx context.Context, db *gorm.DB, order *Order, items []LineItem) error
	// InsertBatch writes many orders as one multi-row statement per
	// table. An empty batch performs no storage calls.
	InsertBatch(ctx context.Context, db *gorm.DB, orders []Order, items []LineItem) error
	FindByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]Order, error)
	DeleteByIDs(ctx context.Context, db *gorm.DB, ids []int64) error
}
