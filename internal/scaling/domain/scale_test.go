package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func duckRecipe() (*recipedomain.Recipe, []recipedomain.RecipeIngredientLine, map[snowflake.ID]recipedomain.PriceView) {
	duckID := snowflake.ID(11)
	recipe := &recipedomain.Recipe{
		ID:       snowflake.ID(1),
		Name:     "Confit Duck",
		Servings: 1,
	}
	lines := []recipedomain.RecipeIngredientLine{
		{IngredientID: duckID, Quantity: 0.5, Unit: "lb", WastePercent: 5},
	}
	prices := map[snowflake.ID]recipedomain.PriceView{
		duckID: {Name: "Duck Breast", Unit: "lb", UnitPrice: 8},
	}
	return recipe, lines, prices
}

func TestScaleIdentityKeepsQuantities(t *testing.T) {
	recipe, lines, prices := duckRecipe()

	out, err := Scale(recipe, lines, prices, Input{ScaleBy: ByServings, TargetServings: 1})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, out.ScaleFactor, 0.0001)
	require.Len(t, out.Lines, 1)
	assert.InDelta(t, 0.5, out.Lines[0].ScaledQuantity, 0.0001)
	assert.InDelta(t, 0.5, out.Lines[0].OriginalQuantity, 0.0001)
}

func TestScaleFiftyServingsWithTrimWaste(t *testing.T) {
	recipe, lines, prices := duckRecipe()

	out, err := Scale(recipe, lines, prices, Input{ScaleBy: ByServings, TargetServings: 50})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, out.ScaleFactor, 0.0001)
	require.Len(t, out.Lines, 1)
	// 25 lb scaled, inflated for 5% trim waste: 25 / 0.95
	assert.InDelta(t, 25.0, out.Lines[0].ScaledQuantity, 0.0001)
	assert.InDelta(t, 26.3158, out.Lines[0].GrossQuantity, 0.001)
	assert.InDelta(t, 210.53, out.TotalCost, 0.01)
	assert.InDelta(t, 4.21, out.CostPerServing, 0.01)
}

func TestScaleByYieldWeight(t *testing.T) {
	flourID := snowflake.ID(21)
	recipe := &recipedomain.Recipe{
		ID:          snowflake.ID(2),
		Name:        "Sourdough",
		Servings:    2,
		YieldWeight: 1,
		YieldUnit:   "kg",
	}
	lines := []recipedomain.RecipeIngredientLine{
		{IngredientID: flourID, Quantity: 600, Unit: "g"},
	}
	prices := map[snowflake.ID]recipedomain.PriceView{
		flourID: {Name: "Flour", Unit: "kg", UnitPrice: 2},
	}

	out, err := Scale(recipe, lines, prices, Input{ScaleBy: ByYield, TargetYieldWeight: 5})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, out.ScaleFactor, 0.0001)
	assert.Equal(t, 10, out.TargetServings)
	require.Len(t, out.Lines, 1)
	assert.InDelta(t, 3000.0, out.Lines[0].ScaledQuantity, 0.001)
	// 3 kg of flour at $2/kg
	assert.InDelta(t, 6.0, out.TotalCost, 0.001)
	assert.InDelta(t, 1.20, out.CostPerUnit, 0.001)
}

func TestScaleCookingLossProjectsCookedQuantity(t *testing.T) {
	recipe, lines, prices := duckRecipe()
	lines[0].CookingLossPercent = 20

	out, err := Scale(recipe, lines, prices, Input{ScaleBy: ByServings, TargetServings: 10})
	require.NoError(t, err)

	// cooking loss shrinks the cooked projection but not what gets bought
	assert.InDelta(t, 4.0, out.Lines[0].ProjectedCookedQuantity, 0.0001)
	assert.InDelta(t, 5.0/0.95, out.Lines[0].GrossQuantity, 0.001)
}

func TestScaleErrors(t *testing.T) {
	recipe, lines, prices := duckRecipe()

	_, err := Scale(recipe, lines, prices, Input{ScaleBy: "portions", TargetServings: 2})
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = Scale(recipe, lines, prices, Input{ScaleBy: ByServings})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	zeroBase := *recipe
	zeroBase.Servings = 0
	_, err = Scale(&zeroBase, lines, prices, Input{ScaleBy: ByServings, TargetServings: 4})
	assert.ErrorIs(t, err, ErrZeroBase)

	noYield := *recipe
	_, err = Scale(&noYield, lines, prices, Input{ScaleBy: ByYield, TargetYieldWeight: 2})
	assert.ErrorIs(t, err, ErrZeroBase)

	badWaste := []recipedomain.RecipeIngredientLine{
		{IngredientID: snowflake.ID(11), Quantity: 1, Unit: "lb", WastePercent: 100},
	}
	_, err = Scale(recipe, badWaste, prices, Input{ScaleBy: ByServings, TargetServings: 1})
	assert.ErrorIs(t, err, ErrExcessiveWaste)
}

func TestScaleSurfacesUnmatchedLines(t *testing.T) {
	recipe, lines, _ := duckRecipe()

	out, err := Scale(recipe, lines, map[snowflake.ID]recipedomain.PriceView{}, Input{ScaleBy: ByServings, TargetServings: 2})
	require.NoError(t, err)

	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].Unmatched)
	assert.Equal(t, recipedomain.UnmatchedMissingIngredient, out.Lines[0].UnmatchedReason)
	assert.True(t, out.HasUnmatchedLines)
	assert.Zero(t, out.Lines[0].LineCost)
}
