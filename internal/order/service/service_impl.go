package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shoplink/internal/observability/metrics"
	"github.com/smallbiznis/shoplink/internal/order/domain"
	"github.com/smallbiznis/shoplink/internal/shopify"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("order.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Ingest(ctx context.Context, storeName string, src shopify.Order) error {
	order, items := domain.FromPlatform(src, storeName, s.genID)
	if err := s.repo.Insert(ctx, s.db, &order, items); err != nil {
		return err
	}

	s.metrics.RecordRowsIngested(ctx, "orders", 1)
	s.metrics.RecordRowsIngested(ctx, "line_items", len(items))
	s.log.Info("order ingested",
		zap.Int64("order_id", order.ID),
		zap.String("store", storeName),
		zap.Int("line_items", len(items)),
	)
	return nil
}

func (s *Service) IngestBatch(ctx context.Context, storeName string, src []shopify.Order) (int, error) {
	orders := make([]domain.Order, 0, len(src))
	var items []domain.LineItem
	for _, raw := range src {
		order, orderItems := domain.FromPlatform(raw, storeName, s.genID)
		orders = append(orders, order)
		items = append(items, orderItems...)
	}

	if err := s.repo.InsertBatch(ctx, s.db, orders, items); err != nil {
		return 0, err
	}

	s.metrics.RecordRowsIngested(ctx, "orders", len(orders))
	s.metrics.RecordRowsIngested(ctx, "line_items", len(items))
	if len(orders) > 0 {
		s.log.Info("orders synced",
			zap.String("store", storeName),
			zap.Int("orders", len(orders)),
			zap.Int("line_items", len(items)),
		)
	}
	return len(orders), nil
}

func (s *Service) FindByIDs(ctx context.Context, ids []int64) ([]domain.Order, error) {
	return s.repo.FindByIDs(ctx, s.db, ids)
}

func (s *Service) Redact(ctx context.Context, ids []int64) error {
	if err := s.repo.DeleteByIDs(ctx, s.db, ids); err != nil {
		return err
	}
	if len(ids) > 0 {
		s.log.Info("orders redacted", zap.Int("count", len(ids)))
	}
	return nil
}
