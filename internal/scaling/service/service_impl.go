package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	scalingdomain "github.com/sajithvengateri-svg/chefos/internal/scaling/domain"
	"github.com/sajithvengateri-svg/chefos/pkg/db/option"
	"github.com/sajithvengateri-svg/chefos/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	recipes     repository.Repository[recipedomain.Recipe]
	lines       repository.Repository[recipedomain.RecipeIngredientLine]
	ingredients repository.Repository[ingredientdomain.Ingredient]
}

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewService(p ServiceParam) scalingdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("scaling.service"),

		recipes:     repository.ProvideStore[recipedomain.Recipe](p.DB),
		lines:       repository.ProvideStore[recipedomain.RecipeIngredientLine](p.DB),
		ingredients: repository.ProvideStore[ingredientdomain.Ingredient](p.DB),
	}
}

func (s *Service) Scale(ctx context.Context, recipeID string, input scalingdomain.Input) (*scalingdomain.ScaledRecipe, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(recipeID))
	if err != nil {
		return nil, scalingdomain.ErrInvalidID
	}

	recipe, err := s.recipes.FindOne(ctx, &recipedomain.Recipe{ID: id})
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, scalingdomain.ErrNotFound
	}

	lineRows, err := s.lines.Find(ctx,
		&recipedomain.RecipeIngredientLine{RecipeID: id},
		option.OrderBy("position ASC"),
	)
	if err != nil {
		return nil, err
	}
	lines := make([]recipedomain.RecipeIngredientLine, 0, len(lineRows))
	for _, row := range lineRows {
		lines = append(lines, *row)
	}

	ingredients, err := s.ingredients.Find(ctx, &ingredientdomain.Ingredient{})
	if err != nil {
		return nil, err
	}
	prices := make(map[snowflake.ID]recipedomain.PriceView, len(ingredients))
	for _, row := range ingredients {
		prices[row.ID] = recipedomain.PriceView{
			Name:      row.Name,
			Unit:      row.Unit,
			UnitPrice: row.CurrentPrice,
		}
	}

	return scalingdomain.Scale(recipe, lines, prices, input)
}
