package service

import (
	"context"

	"github.com/smallbiznis/shoplink/internal/dispute/domain"
	"github.com/smallbiznis/shoplink/internal/observability/metrics"
	"github.com/smallbiznis/shoplink/internal/shopify"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("dispute.service"),
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) IngestCreate(ctx context.Context, storeName string, src shopify.Dispute) error {
	dispute := domain.FromPlatform(src, storeName)
	inserted, err := s.repo.Insert(ctx, s.db, &dispute)
	if err != nil {
		return err
	}
	if !inserted {
		s.log.Info("dispute already known, create skipped", zap.Int64("dispute_id", dispute.ID))
		return nil
	}

	s.metrics.RecordRowsIngested(ctx, "disputes", 1)
	s.log.Info("dispute ingested",
		zap.Int64("dispute_id", dispute.ID),
		zap.String("store", storeName),
		zap.String("status", dispute.Status),
	)
	return nil
}

func (s *Service) IngestUpdate(ctx context.Context, src shopify.Dispute) error {
	dispute := domain.FromPlatform(src, "")
	affected, err := s.repo.UpdateByExternalID(ctx, s.db, &dispute)
	if err != nil {
		return err
	}
	if affected == 0 {
		s.log.Info("dispute update matched no rows", zap.Int64("dispute_id", dispute.ID))
		return nil
	}

	s.log.Info("dispute updated",
		zap.Int64("dispute_id", dispute.ID),
		zap.String("status", dispute.Status),
	)
	return nil
}

func (s *Service) IngestBatch(ctx context.Context, storeName string, src []shopify.Dispute) (int, error) {
	disputes := make([]domain.Dispute, 0, len(src))
	for _, raw := range src {
		disputes = append(disputes, domain.FromPlatform(raw, storeName))
	}

	if err := s.repo.InsertBatch(ctx, s.db, disputes); err != nil {
		return 0, err
	}

	s.metrics.RecordRowsIngested(ctx, "disputes", len(disputes))
	if len(disputes) > 0 {
		s.log.Info("disputes synced",
			zap.String("store", storeName),
			zap.Int("disputes", len(disputes)),
		)
	}
	return len(disputes), nil
}
