package margin

import (
	"testing"

	"github.com/sajithvengateri-svg/chefos/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func pct(v float64) *float64 { return &v }

func TestMaxCostAtThirtyPercent(t *testing.T) {
	out := MaxCost(32, 30, 0, GSTOptions{})
	assert.InDelta(t, 9.60, out.MaxAllowedCost, 0.001)
	assert.InDelta(t, 32.0, out.SellPriceExGST, 0.001)
	assert.InDelta(t, 22.40, out.TargetMargin, 0.001)
	assert.InDelta(t, 70.0, out.TargetMarginPercent, 0.001)
	assert.InDelta(t, 9.60, out.MaxIngredientBudget, 0.001)
}

func TestMaxCostScalesBudgetByServings(t *testing.T) {
	out := MaxCost(32, 30, 4, GSTOptions{})
	assert.InDelta(t, 38.40, out.MaxIngredientBudget, 0.001)
}

func TestMaxCostStripsGSTBeforePercentages(t *testing.T) {
	// $33 inc 10% GST is $30 ex; 30% of that is $9
	out := MaxCost(33, 30, 0, GSTOptions{Enabled: true, RatePercent: 10})
	assert.InDelta(t, 30.0, out.SellPriceExGST, 0.001)
	assert.InDelta(t, 9.0, out.MaxAllowedCost, 0.001)
}

func TestMaxCostZeroInputsReturnZeros(t *testing.T) {
	assert.Zero(t, MaxCost(0, 30, 0, GSTOptions{}))
	assert.Zero(t, MaxCost(32, 0, 0, GSTOptions{}))
}

func TestSetPriceThenCheckPercentRoundTrip(t *testing.T) {
	gst := GSTOptions{Enabled: true, RatePercent: 10}

	priced := SetPrice(9, 30, gst)
	assert.InDelta(t, 30.0, priced.RecommendedSellPrice, 0.01)
	assert.InDelta(t, 33.0, priced.RecommendedSellPriceIncGST, 0.01)

	check := CheckPercent(9, priced.RecommendedSellPriceIncGST, pct(30), gst)
	assert.InDelta(t, 30.0, check.ActualPercent, 0.1)
	assert.False(t, check.IsOverBudget)
}

func TestCheckPercentOverBudget(t *testing.T) {
	out := CheckPercent(12, 32, pct(30), GSTOptions{})
	assert.InDelta(t, 37.5, out.ActualPercent, 0.001)
	assert.True(t, out.HasTarget)
	assert.InDelta(t, 9.60, out.MaxAllowedCost, 0.001)
	assert.InDelta(t, 2.40, out.VarianceCurrency, 0.001)
	assert.True(t, out.IsOverBudget)
}

func TestCheckPercentZeroSellPrice(t *testing.T) {
	out := CheckPercent(12, 0, nil, GSTOptions{})
	assert.Zero(t, out.ActualPercent)
	assert.False(t, out.HasTarget)
	assert.False(t, out.IsOverBudget)
}

func TestServiceResolvesGSTDefaultsFromConfig(t *testing.T) {
	svc := NewService(ServiceParam{
		Log:     zap.NewNop(),
		Costing: config.HolderFor(config.DefaultCostingConfig()),
	})

	// enabled with no explicit rate: config default of 10% applies
	out := svc.MaxCost(MaxCostRequest{
		SellPrice:     33,
		TargetPercent: 30,
		GSTInput:      GSTInput{IncludeGST: true},
	})
	assert.InDelta(t, 30.0, out.SellPriceExGST, 0.001)

	// explicit zero rate is honored, not replaced by the default
	out = svc.MaxCost(MaxCostRequest{
		SellPrice:     33,
		TargetPercent: 30,
		GSTInput:      GSTInput{IncludeGST: true, GSTRatePercent: pct(0)},
	})
	assert.InDelta(t, 33.0, out.SellPriceExGST, 0.001)
}
