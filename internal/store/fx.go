package store

import (
	"github.com/smallbiznis/shoplink/internal/store/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("store",
	fx.Provide(repository.Provide),
)
