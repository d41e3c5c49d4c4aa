package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shoplink/internal/checkout"
	"github.com/smallbiznis/shoplink/internal/clock"
	"github.com/smallbiznis/shoplink/internal/config"
	"github.com/smallbiznis/shoplink/internal/dispute"
	"github.com/smallbiznis/shoplink/internal/install"
	"github.com/smallbiznis/shoplink/internal/migration"
	"github.com/smallbiznis/shoplink/internal/observability"
	"github.com/smallbiznis/shoplink/internal/order"
	"github.com/smallbiznis/shoplink/internal/scheduler"
	"github.com/smallbiznis/shoplink/internal/server"
	"github.com/smallbiznis/shoplink/internal/shopify"
	"github.com/smallbiznis/shoplink/internal/store"
	"github.com/smallbiznis/shoplink/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Platform client and domains
		shopify.Module,
		store.Module,
		order.Module,
		dispute.Module,
		checkout.Module,
		install.Module,

		scheduler.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
