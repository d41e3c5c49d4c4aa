package repository

import (
	"context"
	"fmt"

	"github.com/smallbiznis/shoplink/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order, items []domain.LineItem) error {
	return r.InsertBatch(ctx, db, []domain.Order{*order}, items)
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, orders []domain.Order, items []domain.LineItem) error {
	if len(orders) == 0 {
		return nil
	}

	if err := db.WithContext(ctx).Create(&orders).Error; err != nil {
		return err
	}
	if len(items) > 0 {
		if err := db.WithContext(ctx).Create(&items).Error; err != nil {
			return fmt.Errorf("insert line items: %w", err)
		}
	}
	return nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]domain.Order, error) {
	if len(ids) == 0 {
		return []domain.Order{}, nil
	}

	var orders []domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, first_name, last_name, email, store_name FROM orders WHERE id IN ?`,
		ids,
	).Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) DeleteByIDs(ctx context.Context, db *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Exec(`DELETE FROM line_items WHERE order_id IN ?`, ids).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(`DELETE FROM orders WHERE id IN ?`, ids).Error
}
