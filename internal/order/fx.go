package order

import (
	"github.com/smallbiznis/shoplink/internal/order/repository"
	"github.com/smallbiznis/shoplink/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
