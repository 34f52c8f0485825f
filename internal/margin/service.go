package margin

import (
	"github.com/sajithvengateri-svg/chefos/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service resolves GST defaults from config and exposes the three
// calculator modes to the HTTP layer.
type Service struct {
	log     *zap.Logger
	costing *config.CostingConfigHolder
}

type ServiceParam struct {
	fx.In

	Log     *zap.Logger
	Costing *config.CostingConfigHolder
}

func NewService(p ServiceParam) *Service {
	return &Service{
		log:     p.Log.Named("margin.service"),
		costing: p.Costing,
	}
}

// GSTInput is how requests express GST handling: off by default, and the
// configured default rate when enabled without an explicit rate. An
// explicit rate of zero is honored as zero, not replaced by the default.
type GSTInput struct {
	IncludeGST     bool     `json:"include_gst"`
	GSTRatePercent *float64 `json:"gst_rate_percent"`
}

func (s *Service) resolveGST(in GSTInput) GSTOptions {
	if !in.IncludeGST {
		return GSTOptions{}
	}
	rate := s.costing.Get().DefaultGSTRatePercent
	if in.GSTRatePercent != nil {
		rate = *in.GSTRatePercent
	}
	return GSTOptions{Enabled: true, RatePercent: rate}
}

type MaxCostRequest struct {
	SellPrice     float64 `json:"sell_price"`
	TargetPercent float64 `json:"target_percent"`
	Servings      int     `json:"servings"`
	GSTInput
}

func (s *Service) MaxCost(req MaxCostRequest) MaxCostResult {
	return MaxCost(req.SellPrice, req.TargetPercent, req.Servings, s.resolveGST(req.GSTInput))
}

type SetPriceRequest struct {
	Cost          float64 `json:"cost"`
	TargetPercent float64 `json:"target_percent"`
	GSTInput
}

func (s *Service) SetPrice(req SetPriceRequest) SetPriceResult {
	return SetPrice(req.Cost, req.TargetPercent, s.resolveGST(req.GSTInput))
}

type CheckPercentRequest struct {
	Cost          float64  `json:"cost"`
	SellPrice     float64  `json:"sell_price"`
	TargetPercent *float64 `json:"target_percent"`
	GSTInput
}

func (s *Service) CheckPercent(req CheckPercentRequest) CheckPercentResult {
	return CheckPercent(req.Cost, req.SellPrice, req.TargetPercent, s.resolveGST(req.GSTInput))
}

// Module provides the margin calculator service.
var Module = fx.Module("margin.service",
	fx.Provide(NewService),
)
