package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	"github.com/sajithvengateri-svg/chefos/internal/config"
	"github.com/sajithvengateri-svg/chefos/internal/measurement"
	yielddomain "github.com/sajithvengateri-svg/chefos/internal/yield/domain"
	"github.com/sajithvengateri-svg/chefos/pkg/db/option"
	"github.com/sajithvengateri-svg/chefos/pkg/money"
	"github.com/sajithvengateri-svg/chefos/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	costing *config.CostingConfigHolder

	repo repository.Repository[yielddomain.YieldTest]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Costing *config.CostingConfigHolder
}

func NewService(p ServiceParam) yielddomain.Service {
	return &Service{
		log:     p.Log.Named("yield.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		costing: p.Costing,

		repo: repository.ProvideStore[yielddomain.YieldTest](p.DB),
	}
}

func (s *Service) Record(ctx context.Context, req yielddomain.RecordRequest) (*yielddomain.Response, error) {
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return nil, yielddomain.ErrInvalidItem
	}
	if req.GrossWeight <= 0 {
		return nil, yielddomain.ErrInvalidWeight
	}
	if req.UsableWeight < 0 || req.UsableWeight > req.GrossWeight {
		return nil, yielddomain.ErrInvalidWeight
	}
	unit := strings.ToLower(strings.TrimSpace(req.WeightUnit))
	if !measurement.Known(unit) {
		return nil, yielddomain.ErrInvalidUnit
	}
	if req.PortionsCount < 0 {
		return nil, yielddomain.ErrInvalidPortions
	}
	if req.TargetYieldPercent != nil && (*req.TargetYieldPercent <= 0 || *req.TargetYieldPercent > 100) {
		return nil, yielddomain.ErrInvalidTarget
	}

	// Waste defaults to the unaccounted remainder of the gross weight.
	waste := req.GrossWeight - req.UsableWeight
	if req.WasteWeight != nil {
		if *req.WasteWeight < 0 {
			return nil, yielddomain.ErrInvalidWeight
		}
		waste = *req.WasteWeight
	}

	testDate := req.TestDate
	if testDate.IsZero() {
		testDate = s.clock.Now()
	}

	row := &yielddomain.YieldTest{
		ID:                 s.genID.Generate(),
		ItemName:           name,
		Category:           strings.TrimSpace(req.Category),
		Preparer:           strings.TrimSpace(req.Preparer),
		TestDate:           testDate,
		GrossWeight:        req.GrossWeight,
		UsableWeight:       req.UsableWeight,
		WasteWeight:        waste,
		WeightUnit:         unit,
		CostPerUnit:        req.CostPerUnit,
		PortionsCount:      req.PortionsCount,
		TargetYieldPercent: req.TargetYieldPercent,
		CreatedAt:          s.clock.Now(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.log.Info("yield test recorded",
		zap.String("item", row.ItemName),
		zap.Float64("yield_percent", row.YieldPercent()),
	)
	return toResponse(row), nil
}

func (s *Service) Get(ctx context.Context, id string) (*yielddomain.Response, error) {
	testID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, yielddomain.ErrInvalidID
	}
	row, err := s.repo.FindOne(ctx, &yielddomain.YieldTest{ID: testID})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, yielddomain.ErrNotFound
	}
	return toResponse(row), nil
}

func (s *Service) List(ctx context.Context, filter yielddomain.ListFilter) ([]yielddomain.Response, error) {
	rows, err := s.findTests(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]yielddomain.Response, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toResponse(row))
	}
	return out, nil
}

func (s *Service) AnalyzeTrend(ctx context.Context, filter yielddomain.ListFilter) (*yielddomain.TrendAnalysis, error) {
	rows, err := s.findTests(ctx, filter)
	if err != nil {
		return nil, err
	}

	tests := make([]yielddomain.YieldTest, 0, len(rows))
	for _, row := range rows {
		tests = append(tests, *row)
	}

	cfg := s.costing.Get()
	analysis := yielddomain.AnalyzeTrend(tests, yielddomain.TrendThresholds{
		StdDev:            cfg.YieldStdDevThreshold,
		AvgBelowTargetGap: cfg.YieldAvgBelowTargetGap,
		ConsecutiveBelow:  cfg.YieldConsecutiveBelow,
		PreparerGap:       cfg.PreparerBelowTargetGap,
	})
	return &analysis, nil
}

func (s *Service) findTests(ctx context.Context, filter yielddomain.ListFilter) ([]*yielddomain.YieldTest, error) {
	cond := &yielddomain.YieldTest{
		ItemName: strings.TrimSpace(filter.ItemName),
		Preparer: strings.TrimSpace(filter.Preparer),
	}
	opts := []option.QueryOption{option.OrderBy("test_date ASC, id ASC")}
	if filter.Limit > 0 {
		opts = append(opts, option.Limit(filter.Limit))
	}
	return s.repo.Find(ctx, cond, opts...)
}

func toResponse(row *yielddomain.YieldTest) *yielddomain.Response {
	resp := &yielddomain.Response{
		ID:                 row.ID,
		ItemName:           row.ItemName,
		Category:           row.Category,
		Preparer:           row.Preparer,
		TestDate:           row.TestDate,
		GrossWeight:        row.GrossWeight,
		UsableWeight:       row.UsableWeight,
		WasteWeight:        row.WasteWeight,
		WeightUnit:         row.WeightUnit,
		CostPerUnit:        row.CostPerUnit,
		PortionsCount:      row.PortionsCount,
		TargetYieldPercent: row.TargetYieldPercent,
		YieldPercent:       money.RoundPercent(row.YieldPercent()),
		CostPerPortion:     money.Round(row.CostPerPortion()),
	}
	if row.TargetYieldPercent != nil {
		variance := money.RoundPercent(row.YieldPercent() - *row.TargetYieldPercent)
		resp.VarianceFromTarget = &variance
		resp.BelowTarget = variance < 0
	}
	return resp
}
