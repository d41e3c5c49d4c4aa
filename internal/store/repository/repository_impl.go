package repository

import (
	"context"
	"time"

	"github.com/smallbiznis/shoplink/internal/store/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, store *domain.Store) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO stores (name, access_token, last_abandoned_checkout_sync, created_at, updated_at)
		 VALUES (?, ?, NULL, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET
		   access_token = excluded.access_token,
		   updated_at = excluded.updated_at`,
		store.Name,
		store.AccessToken,
		store.CreatedAt,
		store.UpdatedAt,
	).Error
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.Store, error) {
	var store domain.Store
	err := db.WithContext(ctx).Raw(
		`SELECT name, access_token, last_abandoned_checkout_sync, created_at, updated_at
		 FROM stores WHERE name = ?`,
		name,
	).Scan(&store).Error
	if err != nil {
		return nil, err
	}
	if store.Name == "" {
		return nil, nil
	}
	return &store, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Store, error) {
	var stores []domain.Store
	err := db.WithContext(ctx).Raw(
		`SELECT name, access_token, last_abandoned_checkout_sync, created_at, updated_at
		 FROM stores ORDER BY name`,
	).Scan(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *repo) AdvanceCheckoutSync(ctx context.Context, db *gorm.DB, name string, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE stores SET last_abandoned_checkout_sync = ?, updated_at = ? WHERE name = ?`,
		at.UTC(),
		time.Now().UTC(),
		name,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, name string) error {
	return db.WithContext(ctx).Exec(`DELETE FROM stores WHERE name = ?`, name).Error
}
