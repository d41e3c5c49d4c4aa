package repository

import (
	"context"

	"github.com/smallbiznis/shoplink/internal/dispute/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, dispute *domain.Dispute) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`INSERT INTO disputes (
			id, order_id, type, amount, currency, reason, status,
			initiated_at, evidence_due_by, evidence_sent_on, store_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		dispute.ID,
		dispute.OrderID,
		dispute.Type,
		dispute.Amount,
		dispute.Currency,
		dispute.Reason,
		dispute.Status,
		dispute.InitiatedAt,
		dispute.EvidenceDueBy,
		dispute.EvidenceSentOn,
		dispute.StoreName,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, disputes []domain.Dispute) error {
	if len(disputes) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&disputes).Error
}

func (r *repo) UpdateByExternalID(ctx context.Context, db *gorm.DB, dispute *domain.Dispute) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE disputes
		 SET order_id = ?, type = ?, amount = ?, currency = ?, reason = ?, status = ?,
		     initiated_at = ?, evidence_due_by = ?, evidence_sent_on = ?
		 WHERE id = ?`,
		dispute.OrderID,
		dispute.Type,
		dispute.Amount,
		dispute.Currency,
		dispute.Reason,
		dispute.Status,
		dispute.InitiatedAt,
		dispute.EvidenceDueBy,
		dispute.EvidenceSentOn,
		dispute.ID,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
