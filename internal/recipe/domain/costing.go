package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/sajithvengateri-svg/chefos/internal/measurement"
	"github.com/sajithvengateri-svg/chefos/pkg/money"
)

// PriceView is the slice of ledger state costing needs: the ingredient's
// canonical unit and its price per that unit.
type PriceView struct {
	Name      string
	Unit      string
	UnitPrice float64
}

// Reasons a line could not be costed. Unmatched lines are costed at zero
// and flagged, never silently dropped from the breakdown.
const (
	UnmatchedMissingIngredient = "ingredient_missing"
	UnmatchedUnconvertibleUnit = "unit_unconvertible"
)

// LineCost is the costed view of one ingredient line.
type LineCost struct {
	IngredientID       snowflake.ID `json:"ingredient_id"`
	Name               string       `json:"name"`
	Quantity           float64      `json:"quantity"`
	Unit               string       `json:"unit"`
	CanonicalQuantity  float64      `json:"canonical_quantity"`
	CanonicalUnit      string       `json:"canonical_unit"`
	UnitPrice          float64      `json:"unit_price"`
	Cost               float64      `json:"cost"`
	WastePercent       float64      `json:"waste_percent"`
	CookingLossPercent float64      `json:"cooking_loss_percent"`
	Unmatched          bool         `json:"unmatched"`
	UnmatchedReason    string       `json:"unmatched_reason,omitempty"`
}

// CostBreakdown is the derived costing view of a recipe.
type CostBreakdown struct {
	Lines                 []LineCost `json:"lines"`
	TotalCost             float64    `json:"total_cost"`
	CostPerServing        float64    `json:"cost_per_serving"`
	ActualFoodCostPercent float64    `json:"actual_food_cost_percent"`
	Margin                float64    `json:"margin"`
	IsOverBudget          bool       `json:"is_over_budget"`
	HasUnmatchedLines     bool       `json:"has_unmatched_lines"`
}

// ComputeCost prices every line against the supplied ledger snapshot and
// derives the recipe-level costing fields. It is deterministic: the same
// recipe, lines and snapshot always produce the same breakdown. Lines
// whose ingredient is absent from the snapshot, or whose written unit
// cannot be converted to the ingredient's canonical unit, contribute zero
// cost and are flagged unmatched.
func ComputeCost(recipe *Recipe, lines []RecipeIngredientLine, prices map[snowflake.ID]PriceView) CostBreakdown {
	out := CostBreakdown{Lines: make([]LineCost, 0, len(lines))}

	for _, line := range lines {
		lc := LineCost{
			IngredientID:       line.IngredientID,
			Quantity:           line.Quantity,
			Unit:               line.Unit,
			WastePercent:       line.WastePercent,
			CookingLossPercent: line.CookingLossPercent,
		}

		view, ok := prices[line.IngredientID]
		if !ok {
			lc.Unmatched = true
			lc.UnmatchedReason = UnmatchedMissingIngredient
			out.Lines = append(out.Lines, lc)
			out.HasUnmatchedLines = true
			continue
		}
		lc.Name = view.Name
		lc.CanonicalUnit = view.Unit
		lc.UnitPrice = view.UnitPrice

		canonicalQty, err := measurement.Convert(line.Quantity, line.Unit, view.Unit)
		if err != nil {
			lc.Unmatched = true
			lc.UnmatchedReason = UnmatchedUnconvertibleUnit
			out.Lines = append(out.Lines, lc)
			out.HasUnmatchedLines = true
			continue
		}

		lc.CanonicalQuantity = canonicalQty
		lc.Cost = money.Mul(canonicalQty, view.UnitPrice)
		out.Lines = append(out.Lines, lc)
		out.TotalCost += lc.Cost
	}

	out.TotalCost = money.Round(out.TotalCost)
	if recipe.Servings > 0 {
		out.CostPerServing = money.Round(out.TotalCost / float64(recipe.Servings))
	}
	if recipe.SellPrice > 0 {
		out.ActualFoodCostPercent = out.TotalCost / recipe.SellPrice * 100
		out.Margin = money.Round(recipe.SellPrice - out.TotalCost)
	}
	out.IsOverBudget = recipe.TargetFoodCostPercent > 0 &&
		out.ActualFoodCostPercent > recipe.TargetFoodCostPercent
	return out
}
