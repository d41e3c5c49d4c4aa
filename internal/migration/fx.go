package migration

import (
	checkoutdomain "github.com/smallbiznis/shoplink/internal/checkout/domain"
	"github.com/smallbiznis/shoplink/internal/config"
	disputedomain "github.com/smallbiznis/shoplink/internal/dispute/domain"
	orderdomain "github.com/smallbiznis/shoplink/internal/order/domain"
	storedomain "github.com/smallbiznis/shoplink/internal/store/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The versioned SQL migrations are written for postgres; the
		// sqlite path used for local scratch setups derives the schema
		// from the models instead.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&storedomain.Store{},
				&orderdomain.Order{},
				&orderdomain.LineItem{},
				&disputedomain.Dispute{},
				&checkoutdomain.AbandonedCheckout{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
