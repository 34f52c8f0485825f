package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testThresholds = UrgencyThresholds{CriticalRatio: 0.8, NeededRatio: 0.3}

func TestAggregateDemandNetsStockAcrossTasks(t *testing.T) {
	flourID := snowflake.ID(101)
	views := map[snowflake.ID]IngredientView{
		flourID: {
			ID:           flourID,
			Name:         "Flour",
			Unit:         "kg",
			CurrentPrice: 2.5,
			StockOnHand:  4,
			Supplier:     "Mill & Co",
		},
	}
	tasks := []TaskDemand{
		{
			TaskID:      1,
			ScaleFactor: 1,
			Lines:       []recipedomain.RecipeIngredientLine{{IngredientID: flourID, Quantity: 3, Unit: "kg"}},
		},
		{
			TaskID:      2,
			ScaleFactor: 2,
			Lines:       []recipedomain.RecipeIngredientLine{{IngredientID: flourID, Quantity: 2, Unit: "kg"}},
		},
	}

	summary := AggregateDemand(tasks, views, testThresholds)
	require.Len(t, summary.Ingredients, 1)
	require.Empty(t, summary.Unmatched)

	flour := summary.Ingredients[0]
	assert.InDelta(t, 7.0, flour.RequiredQuantity, 0.001)
	assert.InDelta(t, 3.0, flour.ShortfallQuantity, 0.001)
	assert.Equal(t, UrgencyNeeded, flour.Urgency)
	assert.InDelta(t, 7.5, flour.EstimatedCost, 0.001)
}

func TestAggregateDemandConvertsToCanonicalUnit(t *testing.T) {
	butterID := snowflake.ID(7)
	views := map[snowflake.ID]IngredientView{
		butterID: {ID: butterID, Name: "Butter", Unit: "kg", CurrentPrice: 10, StockOnHand: 0},
	}
	tasks := []TaskDemand{
		{TaskID: 1, ScaleFactor: 1, Lines: []recipedomain.RecipeIngredientLine{
			{IngredientID: butterID, Quantity: 500, Unit: "g"},
		}},
	}

	summary := AggregateDemand(tasks, views, testThresholds)
	require.Len(t, summary.Ingredients, 1)
	assert.InDelta(t, 0.5, summary.Ingredients[0].RequiredQuantity, 0.0001)
	// nothing on hand: the whole requirement is critical
	assert.Equal(t, UrgencyCritical, summary.Ingredients[0].Urgency)
}

func TestAggregateDemandSurfacesUnmatchedLines(t *testing.T) {
	oilID := snowflake.ID(3)
	views := map[snowflake.ID]IngredientView{
		oilID: {ID: oilID, Name: "Olive Oil", Unit: "l", CurrentPrice: 14, StockOnHand: 1},
	}
	tasks := []TaskDemand{
		{TaskID: 9, ScaleFactor: 1, Lines: []recipedomain.RecipeIngredientLine{
			// volume ingredient written by weight: unconvertible
			{IngredientID: oilID, Quantity: 2, Unit: "kg"},
			// ingredient that no longer exists
			{IngredientID: snowflake.ID(999), Quantity: 1, Unit: "kg"},
		}},
	}

	summary := AggregateDemand(tasks, views, testThresholds)
	assert.Empty(t, summary.Ingredients)
	require.Len(t, summary.Unmatched, 2)
	assert.Equal(t, recipedomain.UnmatchedUnconvertibleUnit, summary.Unmatched[0].Reason)
	assert.Equal(t, recipedomain.UnmatchedMissingIngredient, summary.Unmatched[1].Reason)
}

func TestAggregateDemandFullyStocked(t *testing.T) {
	id := snowflake.ID(5)
	views := map[snowflake.ID]IngredientView{
		id: {ID: id, Name: "Salt", Unit: "kg", CurrentPrice: 1, StockOnHand: 10},
	}
	tasks := []TaskDemand{
		{TaskID: 1, ScaleFactor: 1, Lines: []recipedomain.RecipeIngredientLine{
			{IngredientID: id, Quantity: 2, Unit: "kg"},
		}},
	}

	summary := AggregateDemand(tasks, views, testThresholds)
	require.Len(t, summary.Ingredients, 1)
	assert.Zero(t, summary.Ingredients[0].ShortfallQuantity)
	assert.Equal(t, UrgencyStocked, summary.Ingredients[0].Urgency)
	assert.Zero(t, summary.TotalCost)
}

func TestGroupBySupplierKeepsOnlyShortfalls(t *testing.T) {
	summary := DemandSummary{Ingredients: []AggregatedIngredient{
		{Name: "Flour", Supplier: "Mill & Co", ShortfallQuantity: 3, EstimatedCost: 7.5},
		{Name: "Salt", Supplier: "Mill & Co", ShortfallQuantity: 0},
		{Name: "Duck Breast", Supplier: "Poultry Direct", ShortfallQuantity: 2, EstimatedCost: 18},
	}}

	orders := GroupBySupplier(summary)
	require.Len(t, orders, 2)

	assert.Equal(t, "Mill & Co", orders[0].Supplier)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Flour", orders[0].Items[0].Name)
	assert.InDelta(t, 7.5, orders[0].TotalCost, 0.001)

	assert.Equal(t, "Poultry Direct", orders[1].Supplier)
	assert.InDelta(t, 18.0, orders[1].TotalCost, 0.001)
}
