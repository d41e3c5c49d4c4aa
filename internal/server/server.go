package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	checkoutdomain "github.com/smallbiznis/shoplink/internal/checkout/domain"
	"github.com/smallbiznis/shoplink/internal/config"
	disputedomain "github.com/smallbiznis/shoplink/internal/dispute/domain"
	"github.com/smallbiznis/shoplink/internal/install"
	"github.com/smallbiznis/shoplink/internal/observability"
	obsmiddleware "github.com/smallbiznis/shoplink/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/shoplink/internal/observability/metrics"
	orderdomain "github.com/smallbiznis/shoplink/internal/order/domain"
	storedomain "github.com/smallbiznis/shoplink/internal/store/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

type Params struct {
	fx.In

	Engine    *gin.Engine
	Config    config.Config
	DB        *gorm.DB
	Log       *zap.Logger
	Install   *install.Service
	Orders    orderdomain.Service
	Disputes  disputedomain.Service
	Checkouts checkoutdomain.Service
	StoreRepo storedomain.Repository
	Metrics   *obsmetrics.Metrics `optional:"true"`
}

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	db        *gorm.DB
	log       *zap.Logger
	install   *install.Service
	orders    orderdomain.Service
	disputes  disputedomain.Service
	checkouts checkoutdomain.Service
	storeRepo storedomain.Repository
	metrics   *obsmetrics.Metrics
}

func NewServer(p Params) *Server {
	return &Server{
		engine:    p.Engine,
		cfg:       p.Config,
		db:        p.DB,
		log:       p.Log.Named("server"),
		install:   p.Install,
		orders:    p.Orders,
		disputes:  p.Disputes,
		checkouts: p.Checkouts,
		storeRepo: p.StoreRepo,
		metrics:   p.Metrics,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/", s.handleInstall)
	s.engine.GET("/api/auth", s.handleAuthCallback)
	s.engine.GET("/api/sync_abandoned_checkouts", s.handleSyncAbandonedCheckouts)

	s.engine.POST("/api/order_webhook/:store", s.handleOrderWebhook)
	s.engine.POST("/api/dispute_create/:store", s.handleDisputeCreateWebhook)
	s.engine.POST("/api/dispute_update/:store", s.handleDisputeUpdateWebhook)

	s.engine.GET("/gdpr/data_request", s.handleDataRequest)
	s.engine.GET("/gdpr/data_erasure", s.handleDataErasure)
	s.engine.GET("/gdpr/shop_erasure", s.handleShopErasure)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
