package install

import "go.uber.org/fx"

var Module = fx.Module("install",
	fx.Provide(New),
)
