// Package domain implements recipe scaling: producing the purchase
// quantities and costs for a batch scaled to a target serving count or
// target yield weight. Trim waste inflates the purchase quantity;
// cooking loss is reported for yield projection but never changes what
// has to be bought, because purchasing covers pre-cooking mass.
package domain

import (
	"context"
	"errors"
	"math"

	"github.com/bwmarrin/snowflake"
	"github.com/sajithvengateri-svg/chefos/internal/measurement"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"github.com/sajithvengateri-svg/chefos/pkg/money"
)

type ScaleBy string

const (
	ByServings ScaleBy = "servings"
	ByYield    ScaleBy = "yield"
)

type Service interface {
	Scale(ctx context.Context, recipeID string, input Input) (*ScaledRecipe, error)
}

// Input selects the scaling mode and its target. TargetServings is
// required for servings mode, TargetYieldWeight (in the recipe's yield
// unit) for yield mode.
type Input struct {
	ScaleBy           ScaleBy `json:"scale_by"`
	TargetServings    int     `json:"target_servings,omitempty"`
	TargetYieldWeight float64 `json:"target_yield_weight,omitempty"`
}

type ScaledLine struct {
	IngredientID            snowflake.ID `json:"ingredient_id"`
	Name                    string       `json:"name"`
	OriginalQuantity        float64      `json:"original_quantity"`
	ScaledQuantity          float64      `json:"scaled_quantity"`
	GrossQuantity           float64      `json:"gross_quantity"` // waste-adjusted purchase quantity
	ProjectedCookedQuantity float64      `json:"projected_cooked_quantity"`
	Unit                    string       `json:"unit"`
	CanonicalUnit           string       `json:"canonical_unit,omitempty"`
	UnitCost                float64      `json:"unit_cost"` // per canonical unit
	LineCost                float64      `json:"line_cost"`
	WastePercent            float64      `json:"waste_percent"`
	CookingLossPercent      float64      `json:"cooking_loss_percent"`
	Unmatched               bool         `json:"unmatched"`
	UnmatchedReason         string       `json:"unmatched_reason,omitempty"`
}

type ScaledRecipe struct {
	RecipeID          snowflake.ID `json:"recipe_id"`
	RecipeName        string       `json:"recipe_name"`
	ScaleFactor       float64      `json:"scale_factor"`
	TargetServings    int          `json:"target_servings"`
	TargetYieldWeight float64      `json:"target_yield_weight"`
	YieldUnit         string       `json:"yield_unit,omitempty"`
	Lines             []ScaledLine `json:"lines"`
	TotalCost         float64      `json:"total_cost"`
	CostPerServing    float64      `json:"cost_per_serving"`
	CostPerUnit       float64      `json:"cost_per_unit"`
	HasUnmatchedLines bool         `json:"has_unmatched_lines"`
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidMode    = errors.New("invalid_scale_mode")
	ErrInvalidTarget  = errors.New("invalid_scale_target")
	ErrZeroBase       = errors.New("zero_scale_base")
	ErrExcessiveWaste = errors.New("excessive_waste_percent")
)

// Scale applies the scaling input to a recipe snapshot. It is pure; the
// service supplies the recipe, its lines and the ledger price view.
func Scale(recipe *recipedomain.Recipe, lines []recipedomain.RecipeIngredientLine, prices map[snowflake.ID]recipedomain.PriceView, input Input) (*ScaledRecipe, error) {
	out := &ScaledRecipe{
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
		YieldUnit:  recipe.YieldUnit,
	}

	switch input.ScaleBy {
	case ByServings:
		if input.TargetServings <= 0 {
			return nil, ErrInvalidTarget
		}
		if recipe.Servings <= 0 {
			return nil, ErrZeroBase
		}
		out.ScaleFactor = float64(input.TargetServings) / float64(recipe.Servings)
		out.TargetServings = input.TargetServings
		out.TargetYieldWeight = recipe.YieldWeight * out.ScaleFactor
	case ByYield:
		if input.TargetYieldWeight <= 0 {
			return nil, ErrInvalidTarget
		}
		if recipe.YieldWeight <= 0 {
			return nil, ErrZeroBase
		}
		out.ScaleFactor = input.TargetYieldWeight / recipe.YieldWeight
		out.TargetServings = int(math.Round(float64(recipe.Servings) * out.ScaleFactor))
		out.TargetYieldWeight = input.TargetYieldWeight
	default:
		return nil, ErrInvalidMode
	}

	out.Lines = make([]ScaledLine, 0, len(lines))
	for _, line := range lines {
		if line.WastePercent >= 100 || line.WastePercent < 0 {
			return nil, ErrExcessiveWaste
		}

		scaled := line.Quantity * out.ScaleFactor
		sl := ScaledLine{
			IngredientID:            line.IngredientID,
			OriginalQuantity:        line.Quantity,
			ScaledQuantity:          scaled,
			GrossQuantity:           scaled / (1 - line.WastePercent/100),
			ProjectedCookedQuantity: scaled * (1 - line.CookingLossPercent/100),
			Unit:                    line.Unit,
			WastePercent:            line.WastePercent,
			CookingLossPercent:      line.CookingLossPercent,
		}

		view, ok := prices[line.IngredientID]
		if !ok {
			sl.Unmatched = true
			sl.UnmatchedReason = recipedomain.UnmatchedMissingIngredient
			out.Lines = append(out.Lines, sl)
			out.HasUnmatchedLines = true
			continue
		}
		sl.Name = view.Name
		sl.CanonicalUnit = view.Unit
		sl.UnitCost = view.UnitPrice

		grossCanonical, err := measurement.Convert(sl.GrossQuantity, line.Unit, view.Unit)
		if err != nil {
			sl.Unmatched = true
			sl.UnmatchedReason = recipedomain.UnmatchedUnconvertibleUnit
			out.Lines = append(out.Lines, sl)
			out.HasUnmatchedLines = true
			continue
		}

		sl.LineCost = money.Mul(grossCanonical, view.UnitPrice)
		out.Lines = append(out.Lines, sl)
		out.TotalCost += sl.LineCost
	}

	out.TotalCost = money.Round(out.TotalCost)
	if out.TargetServings > 0 {
		out.CostPerServing = money.Round(out.TotalCost / float64(out.TargetServings))
	}
	if out.TargetYieldWeight > 0 {
		out.CostPerUnit = money.Round(out.TotalCost / out.TargetYieldWeight)
	}
	return out, nil
}
