package repository

import (
	"context"

	"github.com/smallbiznis/shoplink/internal/checkout/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, checkouts []domain.AbandonedCheckout) error {
	if len(checkouts) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&checkouts).Error
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) ([]domain.AbandonedCheckout, error) {
	var checkouts []domain.AbandonedCheckout
	err := db.WithContext(ctx).Raw(
		`SELECT id, checkout_url, first_name, last_name, email, store_name
		 FROM abandoned_checkouts WHERE email = ?`,
		email,
	).Scan(&checkouts).Error
	if err != nil {
		return nil, err
	}
	return checkouts, nil
}

func (r *repo) DeleteByEmail(ctx context.Context, db *gorm.DB, email string) error {
	return db.WithContext(ctx).Exec(`DELETE FROM abandoned_checkouts WHERE email = ?`, email).Error
}
