package yield

import (
	"github.com/sajithvengateri-svg/chefos/internal/yield/service"
	"go.uber.org/fx"
)

var Module = fx.Module("yield.service",
	fx.Provide(service.NewService),
)
