package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	"github.com/sajithvengateri-svg/chefos/internal/config"
	yielddomain "github.com/sajithvengateri-svg/chefos/internal/yield/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupYieldService(t *testing.T) yielddomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&yielddomain.YieldTest{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)),
		Costing: config.HolderFor(config.DefaultCostingConfig()),
	})
}

func target(v float64) *float64 { return &v }

func TestRecordDerivesYieldAndPortionCost(t *testing.T) {
	svc := setupYieldService(t)
	ctx := context.Background()

	resp, err := svc.Record(ctx, yielddomain.RecordRequest{
		ItemName:           "Whole Salmon",
		Category:           "protein",
		Preparer:           "dana",
		GrossWeight:        10,
		UsableWeight:       6.5,
		WeightUnit:         "kg",
		CostPerUnit:        12,
		PortionsCount:      20,
		TargetYieldPercent: target(70),
	})
	require.NoError(t, err)

	assert.InDelta(t, 65.0, resp.YieldPercent, 0.001)
	assert.InDelta(t, 3.5, resp.WasteWeight, 0.001)
	// gross cost 10kg * $12 spread over 20 portions
	assert.InDelta(t, 6.0, resp.CostPerPortion, 0.001)
	require.NotNil(t, resp.VarianceFromTarget)
	assert.InDelta(t, -5.0, *resp.VarianceFromTarget, 0.001)
	assert.True(t, resp.BelowTarget)
}

func TestRecordRejectsBadWeights(t *testing.T) {
	svc := setupYieldService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  yielddomain.RecordRequest
		want error
	}{
		{
			name: "zero gross",
			req:  yielddomain.RecordRequest{ItemName: "Salmon", GrossWeight: 0, UsableWeight: 0, WeightUnit: "kg"},
			want: yielddomain.ErrInvalidWeight,
		},
		{
			name: "usable exceeds gross",
			req:  yielddomain.RecordRequest{ItemName: "Salmon", GrossWeight: 5, UsableWeight: 6, WeightUnit: "kg"},
			want: yielddomain.ErrInvalidWeight,
		},
		{
			name: "unknown unit",
			req:  yielddomain.RecordRequest{ItemName: "Salmon", GrossWeight: 5, UsableWeight: 4, WeightUnit: "stone"},
			want: yielddomain.ErrInvalidUnit,
		},
		{
			name: "target above 100",
			req:  yielddomain.RecordRequest{ItemName: "Salmon", GrossWeight: 5, UsableWeight: 4, WeightUnit: "kg", TargetYieldPercent: target(120)},
			want: yielddomain.ErrInvalidTarget,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAnalyzeTrendFlagsConsecutiveMisses(t *testing.T) {
	svc := setupYieldService(t)
	ctx := context.Background()

	// Three tests in a row under the 70% target by more than the gap.
	usable := []float64{6.4, 6.2, 6.1}
	for i, u := range usable {
		_, err := svc.Record(ctx, yielddomain.RecordRequest{
			ItemName:           "Whole Salmon",
			Preparer:           "dana",
			TestDate:           time.Date(2025, 3, 1+i, 8, 0, 0, 0, time.UTC),
			GrossWeight:        10,
			UsableWeight:       u,
			WeightUnit:         "kg",
			TargetYieldPercent: target(70),
		})
		require.NoError(t, err)
	}

	analysis, err := svc.AnalyzeTrend(ctx, yielddomain.ListFilter{ItemName: "Whole Salmon"})
	require.NoError(t, err)

	assert.Equal(t, 3, analysis.TestCount)
	assert.InDelta(t, 62.3, analysis.AvgYield, 0.05)

	codes := map[yielddomain.SuggestionCode]yielddomain.Suggestion{}
	for _, s := range analysis.Suggestions {
		codes[s.Code] = s
	}
	assert.Contains(t, codes, yielddomain.SuggestScheduleTraining)
	assert.Contains(t, codes, yielddomain.SuggestTechniqueReview)
	if s, ok := codes[yielddomain.SuggestCoachPreparer]; assert.True(t, ok) {
		assert.Equal(t, "dana", s.Preparer)
	}
	assert.NotContains(t, codes, yielddomain.SuggestStandardizePortioning)
}

func TestAnalyzeTrendStableYieldsStayQuiet(t *testing.T) {
	svc := setupYieldService(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.Record(ctx, yielddomain.RecordRequest{
			ItemName:           "Brisket",
			TestDate:           time.Date(2025, 3, 1+i, 8, 0, 0, 0, time.UTC),
			GrossWeight:        8,
			UsableWeight:       5.7,
			WeightUnit:         "kg",
			TargetYieldPercent: target(70),
		})
		require.NoError(t, err)
	}

	analysis, err := svc.AnalyzeTrend(ctx, yielddomain.ListFilter{ItemName: "Brisket"})
	require.NoError(t, err)
	assert.Empty(t, analysis.Suggestions)
	assert.InDelta(t, 71.3, analysis.AvgYield, 0.05)
}
