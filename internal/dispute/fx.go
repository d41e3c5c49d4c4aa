package dispute

import (
	"github.com/smallbiznis/shoplink/internal/dispute/repository"
	"github.com/smallbiznis/shoplink/internal/dispute/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dispute",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
