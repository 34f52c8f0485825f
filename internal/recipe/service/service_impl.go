package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
	"github.com/sajithvengateri-svg/chefos/internal/measurement"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"github.com/sajithvengateri-svg/chefos/pkg/db/option"
	"github.com/sajithvengateri-svg/chefos/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	recipes     repository.Repository[recipedomain.Recipe]
	lines       repository.Repository[recipedomain.RecipeIngredientLine]
	ingredients repository.Repository[ingredientdomain.Ingredient]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

func NewService(p ServiceParam) recipedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("recipe.service"),
		genID: p.GenID,
		clock: p.Clock,

		recipes:     repository.ProvideStore[recipedomain.Recipe](p.DB),
		lines:       repository.ProvideStore[recipedomain.RecipeIngredientLine](p.DB),
		ingredients: repository.ProvideStore[ingredientdomain.Ingredient](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req recipedomain.CreateRequest) (*recipedomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, recipedomain.ErrInvalidName
	}
	if req.Servings <= 0 {
		return nil, recipedomain.ErrInvalidServings
	}
	if req.SellPrice < 0 {
		return nil, recipedomain.ErrInvalidSellPrice
	}
	if req.TargetFoodCostPercent <= 0 || req.TargetFoodCostPercent > 100 {
		return nil, recipedomain.ErrInvalidTargetPct
	}
	if req.YieldWeight < 0 {
		return nil, recipedomain.ErrInvalidYieldWeight
	}

	rows, err := s.buildLines(req.Lines)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	recipe := &recipedomain.Recipe{
		ID:                    s.genID.Generate(),
		Name:                  name,
		Category:              strings.TrimSpace(req.Category),
		Servings:              req.Servings,
		SellPrice:             req.SellPrice,
		TargetFoodCostPercent: req.TargetFoodCostPercent,
		YieldWeight:           req.YieldWeight,
		YieldUnit:             strings.ToLower(strings.TrimSpace(req.YieldUnit)),
		Metadata:              req.Metadata,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.recipes.WithTrx(tx).Create(ctx, recipe); err != nil {
			return err
		}
		for _, row := range rows {
			row.RecipeID = recipe.ID
		}
		return s.lines.WithTrx(tx).BatchCreate(ctx, rows)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID.String())
}

func (s *Service) List(ctx context.Context) ([]recipedomain.Response, error) {
	recipes, err := s.recipes.Find(ctx, &recipedomain.Recipe{}, option.OrderBy("name ASC"))
	if err != nil {
		return nil, err
	}

	prices, err := s.priceSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]recipedomain.Response, 0, len(recipes))
	for _, recipe := range recipes {
		lines, err := s.loadLines(ctx, recipe.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toResponse(recipe, lines, prices))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*recipedomain.Response, error) {
	recipe, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	lines, err := s.loadLines(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	prices, err := s.priceSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return toResponse(recipe, lines, prices), nil
}

func (s *Service) Update(ctx context.Context, id string, req recipedomain.UpdateRequest) (*recipedomain.Response, error) {
	recipe, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": s.clock.Now()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, recipedomain.ErrInvalidName
		}
		updates["name"] = name
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Servings != nil {
		if *req.Servings <= 0 {
			return nil, recipedomain.ErrInvalidServings
		}
		updates["servings"] = *req.Servings
	}
	if req.SellPrice != nil {
		if *req.SellPrice < 0 {
			return nil, recipedomain.ErrInvalidSellPrice
		}
		updates["sell_price"] = *req.SellPrice
	}
	if req.TargetFoodCostPercent != nil {
		if *req.TargetFoodCostPercent <= 0 || *req.TargetFoodCostPercent > 100 {
			return nil, recipedomain.ErrInvalidTargetPct
		}
		updates["target_food_cost_percent"] = *req.TargetFoodCostPercent
	}
	if req.YieldWeight != nil {
		if *req.YieldWeight < 0 {
			return nil, recipedomain.ErrInvalidYieldWeight
		}
		updates["yield_weight"] = *req.YieldWeight
	}
	if req.YieldUnit != nil {
		updates["yield_unit"] = strings.ToLower(strings.TrimSpace(*req.YieldUnit))
	}

	var rows []*recipedomain.RecipeIngredientLine
	if req.Lines != nil {
		rows, err = s.buildLines(req.Lines)
		if err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.recipes.WithTrx(tx).Update(ctx, recipe.ID.String(), updates); err != nil {
			return err
		}
		if req.Lines == nil {
			return nil
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&recipedomain.RecipeIngredientLine{}).Error; err != nil {
			return err
		}
		for _, row := range rows {
			row.RecipeID = recipe.ID
		}
		return s.lines.WithTrx(tx).BatchCreate(ctx, rows)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	recipe, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&recipedomain.RecipeIngredientLine{}).Error; err != nil {
			return err
		}
		return s.recipes.WithTrx(tx).Delete(ctx, recipe.ID.String())
	})
}

func (s *Service) buildLines(reqs []recipedomain.LineRequest) ([]*recipedomain.RecipeIngredientLine, error) {
	rows := make([]*recipedomain.RecipeIngredientLine, 0, len(reqs))
	for i, lr := range reqs {
		ingredientID, err := snowflake.ParseString(strings.TrimSpace(lr.IngredientID))
		if err != nil {
			return nil, recipedomain.ErrInvalidLine
		}
		if lr.Quantity < 0 {
			return nil, recipedomain.ErrInvalidLine
		}
		unit := strings.ToLower(strings.TrimSpace(lr.Unit))
		if !measurement.Known(unit) {
			return nil, recipedomain.ErrInvalidLine
		}
		if lr.WastePercent < 0 || lr.WastePercent >= 100 {
			return nil, recipedomain.ErrInvalidWaste
		}
		if lr.CookingLossPercent < 0 || lr.CookingLossPercent >= 100 {
			return nil, recipedomain.ErrInvalidCookingLoss
		}
		rows = append(rows, &recipedomain.RecipeIngredientLine{
			ID:                 s.genID.Generate(),
			IngredientID:       ingredientID,
			Quantity:           lr.Quantity,
			Unit:               unit,
			WastePercent:       lr.WastePercent,
			CookingLossPercent: lr.CookingLossPercent,
			Position:           i,
		})
	}
	return rows, nil
}

func (s *Service) loadLines(ctx context.Context, recipeID snowflake.ID) ([]recipedomain.RecipeIngredientLine, error) {
	rows, err := s.lines.Find(ctx,
		&recipedomain.RecipeIngredientLine{RecipeID: recipeID},
		option.OrderBy("position ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]recipedomain.RecipeIngredientLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *Service) priceSnapshot(ctx context.Context) (map[snowflake.ID]recipedomain.PriceView, error) {
	rows, err := s.ingredients.Find(ctx, &ingredientdomain.Ingredient{})
	if err != nil {
		return nil, err
	}
	prices := make(map[snowflake.ID]recipedomain.PriceView, len(rows))
	for _, row := range rows {
		prices[row.ID] = recipedomain.PriceView{
			Name:      row.Name,
			Unit:      row.Unit,
			UnitPrice: row.CurrentPrice,
		}
	}
	return prices, nil
}

func (s *Service) find(ctx context.Context, id string) (*recipedomain.Recipe, error) {
	recipeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, recipedomain.ErrInvalidID
	}
	row, err := s.recipes.FindOne(ctx, &recipedomain.Recipe{ID: recipeID})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, recipedomain.ErrNotFound
	}
	return row, nil
}

func toResponse(recipe *recipedomain.Recipe, lines []recipedomain.RecipeIngredientLine, prices map[snowflake.ID]recipedomain.PriceView) *recipedomain.Response {
	return &recipedomain.Response{
		ID:                    recipe.ID,
		Name:                  recipe.Name,
		Category:              recipe.Category,
		Servings:              recipe.Servings,
		SellPrice:             recipe.SellPrice,
		TargetFoodCostPercent: recipe.TargetFoodCostPercent,
		YieldWeight:           recipe.YieldWeight,
		YieldUnit:             recipe.YieldUnit,
		Costing:               recipedomain.ComputeCost(recipe, lines, prices),
		CreatedAt:             recipe.CreatedAt,
		UpdatedAt:             recipe.UpdatedAt,
	}
}
