package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
)

type Service interface {
	// ApplyPriceChange records the price change through the ingredient
	// ledger, recomputes every affected recipe and persists the impacts.
	ApplyPriceChange(ctx context.Context, req PriceChangeRequest) (*PropagationResult, error)

	// PreviewPriceChange runs the same computation against the current
	// ledger without recording anything.
	PreviewPriceChange(ctx context.Context, req PriceChangeRequest) (*PropagationResult, error)

	ImpactsForIngredient(ctx context.Context, ingredientID string) ([]ImpactResponse, error)
}

type PriceChangeRequest struct {
	IngredientID string                       `json:"ingredient_id"`
	NewPrice     float64                      `json:"new_price"`
	Source       ingredientdomain.PriceSource `json:"source"`
}

type ImpactResponse struct {
	RecipeID           snowflake.ID `json:"recipe_id"`
	RecipeName         string       `json:"recipe_name"`
	OldCost            float64      `json:"old_cost"`
	NewCost            float64      `json:"new_cost"`
	CostChange         float64      `json:"cost_change"`
	CostChangePercent  float64      `json:"cost_change_percent"`
	OldFoodCostPercent float64      `json:"old_food_cost_percent"`
	NewFoodCostPercent float64      `json:"new_food_cost_percent"`
	WasOverBudget      bool         `json:"was_over_budget"`
	IsNowOverBudget    bool         `json:"is_now_over_budget"`
	HasUnmatchedLines  bool         `json:"has_unmatched_lines"`
	CreatedAt          time.Time    `json:"created_at,omitempty"`
}

// PropagationResult is the outcome of one propagation run. Event is nil
// for previews.
type PropagationResult struct {
	Event   *ingredientdomain.PriceEventResponse `json:"event,omitempty"`
	Impacts []ImpactResponse                     `json:"impacts"`
}

var (
	ErrInvalidIngredient = errors.New("invalid_ingredient")
	ErrIngredientMissing = errors.New("ingredient_not_found")
	ErrInvalidPrice      = errors.New("invalid_price")
)
