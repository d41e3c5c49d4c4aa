package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// Upsert inserts the store or refreshes its access token on
	// reinstall. The sync cursor of an existing row is preserved.
	Upsert(ctx context.Context, db *gorm.DB, store *Store) error
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Store, error)
	List(ctx context.Context, db *gorm.DB) ([]Store, error)
	// AdvanceCheckoutSync moves the abandoned-checkout cursor forward.
	AdvanceCheckoutSync(ctx context.Context, db *gorm.DB, name string, at time.Time) error
	Delete(ctx context.Context, db *gorm.DB, name string) error
}
