package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Insert writes one dispute. Redelivered webhook payloads hit the
	// existing row and report false without error.
	Insert(ctx context.Context, db *gorm.DB, dispute *Dispute) (bool, error)
	// InsertBatch writes many disputes as one multi-row statement,
	// skipping ids already present. Empty batches perform no storage
	// calls.
	InsertBatch(ctx context.Context, db *gorm.DB, disputes []Dispute) error
	// UpdateByExternalID rewrites the mutable fields of the row keyed
	// by the platform id. Zero matched rows is a no-op, not an error.
	UpdateByExternalID(ctx context.Context, db *gorm.DB, dispute *Dispute) (int64, error)
}
