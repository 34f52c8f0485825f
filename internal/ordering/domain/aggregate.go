package domain

import (
	"sort"

	"github.com/bwmarrin/snowflake"
	"github.com/sajithvengateri-svg/chefos/internal/measurement"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"github.com/sajithvengateri-svg/chefos/pkg/money"
)

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyNeeded   Urgency = "needed"
	UrgencyBuffer   Urgency = "buffer"
	UrgencyStocked  Urgency = "stocked"
)

// IngredientView is the stock-and-price snapshot aggregation runs over.
// Unit is the ingredient's canonical purchasing unit.
type IngredientView struct {
	ID           snowflake.ID
	Name         string
	Unit         string
	CurrentPrice float64
	StockOnHand  float64
	Supplier     string
}

// TaskDemand is one prep task's ingredient lines with its scale factor
// already attached. Line units are as written on the recipe.
type TaskDemand struct {
	TaskID      snowflake.ID
	RecipeID    snowflake.ID
	ScaleFactor float64
	Lines       []recipedomain.RecipeIngredientLine
}

// UrgencyThresholds come from the hot-reloadable costing config.
type UrgencyThresholds struct {
	CriticalRatio float64
	NeededRatio   float64
}

type AggregatedIngredient struct {
	IngredientID      snowflake.ID `json:"ingredient_id"`
	Name              string       `json:"name"`
	Unit              string       `json:"unit"`
	RequiredQuantity  float64      `json:"required_quantity"`
	StockOnHand       float64      `json:"stock_on_hand"`
	ShortfallQuantity float64      `json:"shortfall_quantity"`
	Urgency           Urgency      `json:"urgency"`
	EstimatedCost     float64      `json:"estimated_cost"`
	Supplier          string       `json:"supplier"`
}

// UnmatchedDemand records a line the aggregation could not price into the
// order sheet. These are surfaced, never silently dropped.
type UnmatchedDemand struct {
	TaskID       snowflake.ID `json:"task_id"`
	IngredientID snowflake.ID `json:"ingredient_id"`
	Quantity     float64      `json:"quantity"`
	Unit         string       `json:"unit"`
	Reason       string       `json:"reason"`
}

type DemandSummary struct {
	Ingredients []AggregatedIngredient `json:"ingredients"`
	Unmatched   []UnmatchedDemand      `json:"unmatched"`
	TotalCost   float64                `json:"total_estimated_cost"`
}

// AggregateDemand sums ingredient requirements across tasks in each
// ingredient's canonical unit, nets them against stock on hand, and
// prices the shortfall at current ingredient prices.
func AggregateDemand(tasks []TaskDemand, ingredients map[snowflake.ID]IngredientView, th UrgencyThresholds) DemandSummary {
	required := map[snowflake.ID]float64{}
	var order []snowflake.ID
	var unmatched []UnmatchedDemand

	for _, task := range tasks {
		for _, line := range task.Lines {
			quantity := line.Quantity * task.ScaleFactor
			view, ok := ingredients[line.IngredientID]
			if !ok {
				unmatched = append(unmatched, UnmatchedDemand{
					TaskID:       task.TaskID,
					IngredientID: line.IngredientID,
					Quantity:     quantity,
					Unit:         line.Unit,
					Reason:       recipedomain.UnmatchedMissingIngredient,
				})
				continue
			}
			converted, err := measurement.Convert(quantity, line.Unit, view.Unit)
			if err != nil {
				unmatched = append(unmatched, UnmatchedDemand{
					TaskID:       task.TaskID,
					IngredientID: line.IngredientID,
					Quantity:     quantity,
					Unit:         line.Unit,
					Reason:       recipedomain.UnmatchedUnconvertibleUnit,
				})
				continue
			}
			if _, seen := required[line.IngredientID]; !seen {
				order = append(order, line.IngredientID)
			}
			required[line.IngredientID] += converted
		}
	}

	out := DemandSummary{
		Ingredients: make([]AggregatedIngredient, 0, len(order)),
		Unmatched:   unmatched,
	}
	for _, id := range order {
		view := ingredients[id]
		req := required[id]
		shortfall := req - view.StockOnHand
		if shortfall < 0 {
			shortfall = 0
		}
		row := AggregatedIngredient{
			IngredientID:      id,
			Name:              view.Name,
			Unit:              view.Unit,
			RequiredQuantity:  req,
			StockOnHand:       view.StockOnHand,
			ShortfallQuantity: shortfall,
			Urgency:           classify(shortfall, req, th),
			EstimatedCost:     money.Round(shortfall * view.CurrentPrice),
			Supplier:          view.Supplier,
		}
		out.TotalCost += row.EstimatedCost
		out.Ingredients = append(out.Ingredients, row)
	}
	sort.Slice(out.Ingredients, func(i, j int) bool {
		return out.Ingredients[i].Name < out.Ingredients[j].Name
	})
	out.TotalCost = money.Round(out.TotalCost)
	return out
}

func classify(shortfall, required float64, th UrgencyThresholds) Urgency {
	if shortfall <= 0 || required <= 0 {
		return UrgencyStocked
	}
	ratio := shortfall / required
	switch {
	case ratio > th.CriticalRatio:
		return UrgencyCritical
	case ratio > th.NeededRatio:
		return UrgencyNeeded
	default:
		return UrgencyBuffer
	}
}

type SupplierOrder struct {
	Supplier  string                 `json:"supplier"`
	Items     []AggregatedIngredient `json:"items"`
	TotalCost float64                `json:"total_estimated_cost"`
}

// GroupBySupplier splits an aggregated demand into per-supplier order
// sheets, keeping only ingredients that actually need purchasing.
func GroupBySupplier(summary DemandSummary) []SupplierOrder {
	grouped := map[string]*SupplierOrder{}
	var names []string
	for _, item := range summary.Ingredients {
		if item.ShortfallQuantity <= 0 {
			continue
		}
		g, ok := grouped[item.Supplier]
		if !ok {
			g = &SupplierOrder{Supplier: item.Supplier}
			grouped[item.Supplier] = g
			names = append(names, item.Supplier)
		}
		g.Items = append(g.Items, item)
		g.TotalCost = money.Round(g.TotalCost + item.EstimatedCost)
	}
	sort.Strings(names)
	out := make([]SupplierOrder, 0, len(names))
	for _, name := range names {
		out = append(out, *grouped[name])
	}
	return out
}
