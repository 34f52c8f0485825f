package recipe

import (
	"github.com/sajithvengateri-svg/chefos/internal/recipe/service"
	"go.uber.org/fx"
)

var Module = fx.Module("recipe.service",
	fx.Provide(service.NewService),
)
