// Package margin implements the reverse-costing calculator: maximum
// allowed cost from a sell price, recommended sell price from a cost, and
// actual food-cost percentage from both. All three modes share one GST
// rule: an inclusive sell price is stripped to its exclusive value before
// any percentage math. Zero inputs are common transient form states, so
// every mode guards division and returns zero-valued results instead of
// erroring.
package margin

import "github.com/sajithvengateri-svg/chefos/pkg/money"

// GSTOptions controls goods-and-services-tax handling for one calculation.
// Disabled means prices are used as given.
type GSTOptions struct {
	Enabled     bool
	RatePercent float64
}

func (g GSTOptions) exclusive(priceInc float64) float64 {
	if !g.Enabled || g.RatePercent <= 0 {
		return priceInc
	}
	return priceInc / (1 + g.RatePercent/100)
}

func (g GSTOptions) inclusive(priceEx float64) float64 {
	if !g.Enabled || g.RatePercent <= 0 {
		return priceEx
	}
	return priceEx * (1 + g.RatePercent/100)
}

// MaxCostResult is the max-cost mode output: how much the ingredients of
// one serving may cost at a given sell price and target percentage.
type MaxCostResult struct {
	SellPriceExGST      float64 `json:"sell_price_ex_gst"`
	MaxAllowedCost      float64 `json:"max_allowed_cost"`
	TargetMargin        float64 `json:"target_margin"`
	TargetMarginPercent float64 `json:"target_margin_percent"`
	MaxIngredientBudget float64 `json:"max_ingredient_budget"`
}

// MaxCost computes the ingredient budget for a dish sold at sellPrice
// with a target food-cost percentage. Servings scales the per-serving
// budget to a whole batch.
func MaxCost(sellPrice, targetPercent float64, servings int, gst GSTOptions) MaxCostResult {
	if sellPrice <= 0 || targetPercent <= 0 {
		return MaxCostResult{}
	}

	ex := gst.exclusive(sellPrice)
	maxAllowed := ex * targetPercent / 100

	out := MaxCostResult{
		SellPriceExGST:      money.Round(ex),
		MaxAllowedCost:      money.Round(maxAllowed),
		TargetMargin:        money.Round(ex - maxAllowed),
		TargetMarginPercent: money.RoundPercent(100 - targetPercent),
	}
	if servings > 0 {
		out.MaxIngredientBudget = money.Round(maxAllowed * float64(servings))
	} else {
		out.MaxIngredientBudget = out.MaxAllowedCost
	}
	return out
}

// SetPriceResult is the set-price mode output: the sell price needed to
// land a cost on a target percentage.
type SetPriceResult struct {
	RecommendedSellPrice       float64 `json:"recommended_sell_price"`
	RecommendedSellPriceIncGST float64 `json:"recommended_sell_price_inc_gst"`
}

// SetPrice derives the sell price at which cost equals targetPercent of
// the exclusive price. The inclusive price adds GST back on when enabled.
func SetPrice(cost, targetPercent float64, gst GSTOptions) SetPriceResult {
	if cost <= 0 || targetPercent <= 0 {
		return SetPriceResult{}
	}

	recommended := cost / (targetPercent / 100)
	return SetPriceResult{
		RecommendedSellPrice:       money.Round(recommended),
		RecommendedSellPriceIncGST: money.Round(gst.inclusive(recommended)),
	}
}

// CheckPercentResult is the check mode output: where a dish actually
// lands against its target.
type CheckPercentResult struct {
	ActualPercent    float64 `json:"actual_percent"`
	HasTarget        bool    `json:"has_target"`
	MaxAllowedCost   float64 `json:"max_allowed_cost,omitempty"`
	VarianceCurrency float64 `json:"variance_currency,omitempty"`
	IsOverBudget     bool    `json:"is_over_budget"`
}

// CheckPercent computes the actual food-cost percentage of cost against
// sellPrice. When a target percentage is supplied the variance is also
// reported in currency as cost minus the allowed cost at target.
func CheckPercent(cost, sellPrice float64, targetPercent *float64, gst GSTOptions) CheckPercentResult {
	ex := gst.exclusive(sellPrice)

	var out CheckPercentResult
	if ex > 0 && cost >= 0 {
		out.ActualPercent = money.RoundPercent(cost / ex * 100)
	}

	if targetPercent != nil && *targetPercent > 0 {
		out.HasTarget = true
		out.MaxAllowedCost = money.Round(ex * *targetPercent / 100)
		out.VarianceCurrency = money.Round(cost - out.MaxAllowedCost)
		out.IsOverBudget = out.ActualPercent > *targetPercent
	}
	return out
}
