package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	costingdomain "github.com/sajithvengateri-svg/chefos/internal/costing/domain"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
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

	ledger ingredientdomain.Service

	impacts     repository.Repository[costingdomain.RecipeCostImpact]
	ingredients repository.Repository[ingredientdomain.Ingredient]
	recipes     repository.Repository[recipedomain.Recipe]
	lines       repository.Repository[recipedomain.RecipeIngredientLine]
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Ledger ingredientdomain.Service
}

func NewService(p ServiceParam) costingdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("costing.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		ledger: p.Ledger,

		impacts:     repository.ProvideStore[costingdomain.RecipeCostImpact](p.DB),
		ingredients: repository.ProvideStore[ingredientdomain.Ingredient](p.DB),
		recipes:     repository.ProvideStore[recipedomain.Recipe](p.DB),
		lines:       repository.ProvideStore[recipedomain.RecipeIngredientLine](p.DB),
	}
}

func (s *Service) ApplyPriceChange(ctx context.Context, req costingdomain.PriceChangeRequest) (*costingdomain.PropagationResult, error) {
	if req.NewPrice < 0 {
		return nil, costingdomain.ErrInvalidPrice
	}

	event, err := s.ledger.UpdatePrice(ctx, req.IngredientID, ingredientdomain.UpdatePriceRequest{
		NewPrice: req.NewPrice,
		Source:   req.Source,
	})
	if err != nil {
		if errors.Is(err, ingredientdomain.ErrNotFound) {
			return nil, costingdomain.ErrIngredientMissing
		}
		if errors.Is(err, ingredientdomain.ErrInvalidID) {
			return nil, costingdomain.ErrInvalidIngredient
		}
		return nil, err
	}

	snap, err := s.snapshot(ctx, event.IngredientID, event.OldPrice, event.NewPrice)
	if err != nil {
		return nil, err
	}
	impacts := computeImpacts(snap)

	now := s.clock.Now()
	rows := make([]*costingdomain.RecipeCostImpact, 0, len(impacts))
	for i := range impacts {
		impacts[i].CreatedAt = now
		rows = append(rows, &costingdomain.RecipeCostImpact{
			ID:                 s.genID.Generate(),
			PriceEventID:       event.ID,
			IngredientID:       event.IngredientID,
			RecipeID:           impacts[i].RecipeID,
			RecipeName:         impacts[i].RecipeName,
			OldCost:            impacts[i].OldCost,
			NewCost:            impacts[i].NewCost,
			CostChange:         impacts[i].CostChange,
			CostChangePercent:  impacts[i].CostChangePercent,
			OldFoodCostPercent: impacts[i].OldFoodCostPercent,
			NewFoodCostPercent: impacts[i].NewFoodCostPercent,
			WasOverBudget:      impacts[i].WasOverBudget,
			IsNowOverBudget:    impacts[i].IsNowOverBudget,
			HasUnmatchedLines:  impacts[i].HasUnmatchedLines,
			CreatedAt:          now,
		})
	}
	if err := s.impacts.BatchCreate(ctx, rows); err != nil {
		return nil, err
	}

	s.log.Info("price change propagated",
		zap.String("ingredient_id", event.IngredientID.String()),
		zap.Float64("old_price", event.OldPrice),
		zap.Float64("new_price", event.NewPrice),
		zap.Int("recipes_affected", len(impacts)),
	)
	return &costingdomain.PropagationResult{Event: event, Impacts: impacts}, nil
}

func (s *Service) PreviewPriceChange(ctx context.Context, req costingdomain.PriceChangeRequest) (*costingdomain.PropagationResult, error) {
	if req.NewPrice < 0 {
		return nil, costingdomain.ErrInvalidPrice
	}
	ingredientID, err := snowflake.ParseString(strings.TrimSpace(req.IngredientID))
	if err != nil {
		return nil, costingdomain.ErrInvalidIngredient
	}

	row, err := s.ingredients.FindOne(ctx, &ingredientdomain.Ingredient{ID: ingredientID})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, costingdomain.ErrIngredientMissing
	}

	snap, err := s.snapshot(ctx, ingredientID, row.CurrentPrice, req.NewPrice)
	if err != nil {
		return nil, err
	}
	return &costingdomain.PropagationResult{Impacts: computeImpacts(snap)}, nil
}

func (s *Service) ImpactsForIngredient(ctx context.Context, ingredientID string) ([]costingdomain.ImpactResponse, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(ingredientID))
	if err != nil {
		return nil, costingdomain.ErrInvalidIngredient
	}

	rows, err := s.impacts.Find(ctx,
		&costingdomain.RecipeCostImpact{IngredientID: id},
		option.OrderBy("created_at DESC, id DESC"),
		option.Limit(200),
	)
	if err != nil {
		return nil, err
	}

	out := make([]costingdomain.ImpactResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, costingdomain.ImpactResponse{
			RecipeID:           row.RecipeID,
			RecipeName:         row.RecipeName,
			OldCost:            row.OldCost,
			NewCost:            row.NewCost,
			CostChange:         row.CostChange,
			CostChangePercent:  row.CostChangePercent,
			OldFoodCostPercent: row.OldFoodCostPercent,
			NewFoodCostPercent: row.NewFoodCostPercent,
			WasOverBudget:      row.WasOverBudget,
			IsNowOverBudget:    row.IsNowOverBudget,
			HasUnmatchedLines:  row.HasUnmatchedLines,
			CreatedAt:          row.CreatedAt,
		})
	}
	return out, nil
}

// snapshot loads everything the pure computation needs: the affected
// recipes with their lines and a price view of the whole ledger.
func (s *Service) snapshot(ctx context.Context, ingredientID snowflake.ID, oldPrice, newPrice float64) (*propagationSnapshot, error) {
	var recipeIDs []snowflake.ID
	if err := s.db.WithContext(ctx).Raw(
		`SELECT DISTINCT recipe_id FROM recipe_ingredient_lines WHERE ingredient_id = ?`,
		ingredientID,
	).Scan(&recipeIDs).Error; err != nil {
		return nil, err
	}

	snap := &propagationSnapshot{
		IngredientID: ingredientID,
		OldPrice:     oldPrice,
		NewPrice:     newPrice,
		Prices:       make(map[snowflake.ID]recipedomain.PriceView),
	}

	ingredients, err := s.ingredients.Find(ctx, &ingredientdomain.Ingredient{})
	if err != nil {
		return nil, err
	}
	for _, row := range ingredients {
		snap.Prices[row.ID] = recipedomain.PriceView{
			Name:      row.Name,
			Unit:      row.Unit,
			UnitPrice: row.CurrentPrice,
		}
	}

	for _, recipeID := range recipeIDs {
		recipe, err := s.recipes.FindOne(ctx, &recipedomain.Recipe{ID: recipeID})
		if err != nil {
			return nil, err
		}
		if recipe == nil {
			continue
		}
		lineRows, err := s.lines.Find(ctx,
			&recipedomain.RecipeIngredientLine{RecipeID: recipeID},
			option.OrderBy("position ASC"),
		)
		if err != nil {
			return nil, err
		}
		lines := make([]recipedomain.RecipeIngredientLine, 0, len(lineRows))
		for _, row := range lineRows {
			lines = append(lines, *row)
		}
		snap.Recipes = append(snap.Recipes, recipeWithLines{Recipe: recipe, Lines: lines})
	}

	return snap, nil
}
