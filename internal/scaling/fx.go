package scaling

import (
	"github.com/sajithvengateri-svg/chefos/internal/scaling/service"
	"go.uber.org/fx"
)

var Module = fx.Module("scaling.service",
	fx.Provide(service.NewService),
)
