package service

import (
	"github.com/bwmarrin/snowflake"
	costingdomain "github.com/sajithvengateri-svg/chefos/internal/costing/domain"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"github.com/sajithvengateri-svg/chefos/pkg/money"
)

type recipeWithLines struct {
	Recipe *recipedomain.Recipe
	Lines  []recipedomain.RecipeIngredientLine
}

// propagationSnapshot is everything computeImpacts reads. Prices carries
// the post-change price for the changed ingredient; the pre-change price
// is substituted only for the old-cost pass.
type propagationSnapshot struct {
	IngredientID snowflake.ID
	OldPrice     float64
	NewPrice     float64
	Recipes      []recipeWithLines
	Prices       map[snowflake.ID]recipedomain.PriceView
}

// computeImpacts derives the cost impact of one price change on every
// affected recipe. It is pure: identical snapshots always produce
// identical impacts, so re-running a propagation with no further ledger
// changes is a no-op in content.
func computeImpacts(snap *propagationSnapshot) []costingdomain.ImpactResponse {
	oldPrices := make(map[snowflake.ID]recipedomain.PriceView, len(snap.Prices))
	newPrices := make(map[snowflake.ID]recipedomain.PriceView, len(snap.Prices))
	for id, view := range snap.Prices {
		if id == snap.IngredientID {
			old := view
			old.UnitPrice = snap.OldPrice
			oldPrices[id] = old
			upd := view
			upd.UnitPrice = snap.NewPrice
			newPrices[id] = upd
			continue
		}
		oldPrices[id] = view
		newPrices[id] = view
	}

	impacts := make([]costingdomain.ImpactResponse, 0, len(snap.Recipes))
	for _, rw := range snap.Recipes {
		oldCost := recipedomain.ComputeCost(rw.Recipe, rw.Lines, oldPrices)
		newCost := recipedomain.ComputeCost(rw.Recipe, rw.Lines, newPrices)

		impact := costingdomain.ImpactResponse{
			RecipeID:           rw.Recipe.ID,
			RecipeName:         rw.Recipe.Name,
			OldCost:            oldCost.TotalCost,
			NewCost:            newCost.TotalCost,
			CostChange:         money.Round(newCost.TotalCost - oldCost.TotalCost),
			OldFoodCostPercent: money.RoundPercent(oldCost.ActualFoodCostPercent),
			NewFoodCostPercent: money.RoundPercent(newCost.ActualFoodCostPercent),
			WasOverBudget:      oldCost.IsOverBudget,
			IsNowOverBudget:    newCost.IsOverBudget,
			HasUnmatchedLines:  newCost.HasUnmatchedLines,
		}
		if oldCost.TotalCost > 0 {
			impact.CostChangePercent = money.RoundPercent((newCost.TotalCost - oldCost.TotalCost) / oldCost.TotalCost * 100)
		}
		impacts = append(impacts, impact)
	}
	return impacts
}
