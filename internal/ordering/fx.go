package ordering

import (
	"github.com/sajithvengateri-svg/chefos/internal/ordering/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ordering.service",
	fx.Provide(service.NewService),
)
