package checkout

import (
	"github.com/smallbiznis/shoplink/internal/checkout/repository"
	"github.com/smallbiznis/shoplink/internal/checkout/service"
	"go.uber.org/fx"
)

var Module = fx.Module("checkout",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
