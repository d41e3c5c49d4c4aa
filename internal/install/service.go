package install

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/shoplink/internal/config"
	disputedomain "github.com/smallbiznis/shoplink/internal/dispute/domain"
	"github.com/smallbiznis/shoplink/internal/observability/metrics"
	orderdomain "github.com/smallbiznis/shoplink/internal/order/domain"
	"github.com/smallbiznis/shoplink/internal/shopify"
	storedomain "github.com/smallbiznis/shoplink/internal/store/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Platform is the slice of the platform client the install flow needs.
type Platform interface {
	AuthorizeURL(shop, state string) string
	ExchangeToken(ctx context.Context, shop, code string) (string, error)
	ListWebhooks(ctx context.Context, shop, token string) ([]shopify.Webhook, error)
	RegisterWebhook(ctx context.Context, shop, token, topic, address string) error
	FetchOrders(ctx context.Context, shop, token string) ([]shopify.Order, error)
	FetchDisputes(ctx context.Context, shop, token string) ([]shopify.Dispute, error)
}

type webhookSpec struct {
	topic string
	path  string
}

// One subscription per ingestion path. Addresses carry the shop domain
// so webhook handlers know which store a payload belongs to.
var webhookSpecs = []webhookSpec{
	{topic: "orders/paid", path: "api/order_webhook/"},
	{topic: "disputes/create", path: "api/dispute_create/"},
	{topic: "disputes/update", path: "api/dispute_update/"},
}

type Params struct {
	fx.In

	Config    config.Config
	DB        *gorm.DB
	Log       *zap.Logger
	Client    *shopify.Client
	StoreRepo storedomain.Repository
	Orders    orderdomain.Service
	Disputes  disputedomain.Service
	Metrics   *metrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	platform  Platform
	storeRepo storedomain.Repository
	orders    orderdomain.Service
	disputes  disputedomain.Service
	metrics   *metrics.Metrics
	baseURI   string
}

func New(p Params) *Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("install.service"),
		platform:  p.Client,
		storeRepo: p.StoreRepo,
		orders:    p.Orders,
		disputes:  p.Disputes,
		metrics:   p.Metrics,
		baseURI:   p.Config.PlatformBaseURI,
	}
}

// NewWithPlatform is the test seam for a fake platform client.
func NewWithPlatform(p Params, platform Platform) *Service {
	svc := New(p)
	svc.platform = platform
	return svc
}

// AuthorizeURL builds the platform authorization redirect with a fresh
// anti-forgery state token.
func (s *Service) AuthorizeURL(shop string) string {
	return s.platform.AuthorizeURL(shop, uuid.NewString())
}

// Complete finishes a verified OAuth callback: trades the code for an
// access token, persists the store, ensures the webhook subscriptions
// exist, and runs the initial order and dispute sync. Any failure
// aborts and surfaces; re-running the install is the recovery path.
func (s *Service) Complete(ctx context.Context, shop, code string) error {
	token, err := s.platform.ExchangeToken(ctx, shop, code)
	if err != nil {
		s.metrics.RecordInstall(ctx, "error")
		return err
	}

	now := time.Now().UTC()
	err = s.storeRepo.Upsert(ctx, s.db, &storedomain.Store{
		Name:        shop,
		AccessToken: token,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.metrics.RecordInstall(ctx, "error")
		return err
	}

	if err := s.ensureWebhooks(ctx, shop, token); err != nil {
		s.metrics.RecordInstall(ctx, "error")
		return err
	}

	if err := s.initialSync(ctx, shop, token); err != nil {
		s.metrics.RecordInstall(ctx, "error")
		return err
	}

	s.metrics.RecordInstall(ctx, "ok")
	s.log.Info("install completed", zap.String("store", shop))
	return nil
}

// ensureWebhooks registers only the subscriptions the store is missing
// so re-running install never duplicates them.
func (s *Service) ensureWebhooks(ctx context.Context, shop, token string) error {
	existing, err := s.platform.ListWebhooks(ctx, shop, token)
	if err != nil {
		return err
	}

	registered := make(map[string]bool, len(existing))
	for _, webhook := range existing {
		registered[webhook.Topic+" "+webhook.Address] = true
	}

	for _, spec := range webhookSpecs {
		address := s.baseURI + spec.path + shop
		if registered[spec.topic+" "+address] {
			continue
		}
		if err := s.platform.RegisterWebhook(ctx, shop, token, spec.topic, address); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) initialSync(ctx context.Context, shop, token string) error {
	orders, err := s.platform.FetchOrders(ctx, shop, token)
	if err != nil {
		return err
	}
	if _, err := s.orders.IngestBatch(ctx, shop, orders); err != nil {
		return err
	}

	disputes, err := s.platform.FetchDisputes(ctx, shop, token)
	if err != nil {
		return err
	}
	if _, err := s.disputes.IngestBatch(ctx, shop, disputes); err != nil {
		return err
	}
	return nil
}
