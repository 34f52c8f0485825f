package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCostDerivesRecipeFields(t *testing.T) {
	duckID := snowflake.ID(1)
	sauceID := snowflake.ID(2)
	recipe := &Recipe{
		Name:                  "Duck a l'Orange",
		Servings:              2,
		SellPrice:             32,
		TargetFoodCostPercent: 30,
	}
	lines := []RecipeIngredientLine{
		{IngredientID: duckID, Quantity: 1, Unit: "lb"},
		{IngredientID: sauceID, Quantity: 250, Unit: "ml"},
	}
	prices := map[snowflake.ID]PriceView{
		duckID:  {Name: "Duck Breast", Unit: "lb", UnitPrice: 8},
		sauceID: {Name: "Orange Sauce", Unit: "l", UnitPrice: 6},
	}

	out := ComputeCost(recipe, lines, prices)
	require.Len(t, out.Lines, 2)

	// 1 lb at $8 plus 0.25 l at $6
	assert.InDelta(t, 9.50, out.TotalCost, 0.001)
	assert.InDelta(t, 4.75, out.CostPerServing, 0.001)
	assert.InDelta(t, 29.6875, out.ActualFoodCostPercent, 0.001)
	assert.InDelta(t, 22.50, out.Margin, 0.001)
	assert.False(t, out.IsOverBudget)
	assert.False(t, out.HasUnmatchedLines)

	assert.InDelta(t, 0.25, out.Lines[1].CanonicalQuantity, 0.0001)
	assert.Equal(t, "l", out.Lines[1].CanonicalUnit)
}

func TestComputeCostDeterministic(t *testing.T) {
	id := snowflake.ID(4)
	recipe := &Recipe{Name: "Stock", Servings: 1, SellPrice: 10, TargetFoodCostPercent: 30}
	lines := []RecipeIngredientLine{{IngredientID: id, Quantity: 2, Unit: "kg"}}
	prices := map[snowflake.ID]PriceView{id: {Name: "Bones", Unit: "kg", UnitPrice: 1.5}}

	first := ComputeCost(recipe, lines, prices)
	second := ComputeCost(recipe, lines, prices)
	assert.Equal(t, first, second)
}

func TestComputeCostZeroSellPrice(t *testing.T) {
	id := snowflake.ID(3)
	recipe := &Recipe{Name: "Staff Meal", Servings: 4}
	lines := []RecipeIngredientLine{{IngredientID: id, Quantity: 2, Unit: "kg"}}
	prices := map[snowflake.ID]PriceView{id: {Name: "Rice", Unit: "kg", UnitPrice: 3}}

	out := ComputeCost(recipe, lines, prices)
	assert.InDelta(t, 6.0, out.TotalCost, 0.001)
	assert.Zero(t, out.ActualFoodCostPercent)
	assert.Zero(t, out.Margin)
	assert.False(t, out.IsOverBudget)
}

func TestComputeCostFlagsUnmatchedLines(t *testing.T) {
	knownID := snowflake.ID(1)
	missingID := snowflake.ID(2)
	recipe := &Recipe{Name: "Special", Servings: 1, SellPrice: 20, TargetFoodCostPercent: 30}
	lines := []RecipeIngredientLine{
		{IngredientID: knownID, Quantity: 100, Unit: "g"},
		{IngredientID: missingID, Quantity: 1, Unit: "ea"},
		{IngredientID: knownID, Quantity: 2, Unit: "cup"}, // volume of a mass-priced ingredient
	}
	prices := map[snowflake.ID]PriceView{
		knownID: {Name: "Butter", Unit: "kg", UnitPrice: 12},
	}

	out := ComputeCost(recipe, lines, prices)
	require.Len(t, out.Lines, 3)
	assert.True(t, out.HasUnmatchedLines)

	assert.False(t, out.Lines[0].Unmatched)
	assert.InDelta(t, 1.20, out.Lines[0].Cost, 0.001)

	assert.True(t, out.Lines[1].Unmatched)
	assert.Equal(t, UnmatchedMissingIngredient, out.Lines[1].UnmatchedReason)
	assert.Zero(t, out.Lines[1].Cost)

	assert.True(t, out.Lines[2].Unmatched)
	assert.Equal(t, UnmatchedUnconvertibleUnit, out.Lines[2].UnmatchedReason)
	assert.Zero(t, out.Lines[2].Cost)

	// unmatched lines contribute zero, matched lines still cost
	assert.InDelta(t, 1.20, out.TotalCost, 0.001)
}
