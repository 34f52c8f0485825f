package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidID       = errors.New("invalid_yield_test_id")
	ErrNotFound        = errors.New("yield_test_not_found")
	ErrInvalidItem     = errors.New("invalid_item_name")
	ErrInvalidWeight   = errors.New("invalid_weight")
	ErrInvalidUnit     = errors.New("invalid_weight_unit")
	ErrInvalidPortions = errors.New("invalid_portions_count")
	ErrInvalidTarget   = errors.New("invalid_target_yield")
)

type Service interface {
	Record(ctx context.Context, req RecordRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, filter ListFilter) ([]Response, error)
	AnalyzeTrend(ctx context.Context, filter ListFilter) (*TrendAnalysis, error)
}

type RecordRequest struct {
	ItemName           string    `json:"item_name"`
	Category           string    `json:"category"`
	Preparer           string    `json:"preparer"`
	TestDate           time.Time `json:"test_date"`
	GrossWeight        float64   `json:"gross_weight"`
	UsableWeight       float64   `json:"usable_weight"`
	WasteWeight        *float64  `json:"waste_weight,omitempty"`
	WeightUnit         string    `json:"weight_unit"`
	CostPerUnit        float64   `json:"cost_per_unit"`
	PortionsCount      int       `json:"portions_count"`
	TargetYieldPercent *float64  `json:"target_yield_percent,omitempty"`
}

type ListFilter struct {
	ItemName string
	Preparer string
	Limit    int
}

type Response struct {
	ID                 snowflake.ID `json:"id"`
	ItemName           string       `json:"item_name"`
	Category           string       `json:"category"`
	Preparer           string       `json:"preparer"`
	TestDate           time.Time    `json:"test_date"`
	GrossWeight        float64      `json:"gross_weight"`
	UsableWeight       float64      `json:"usable_weight"`
	WasteWeight        float64      `json:"waste_weight"`
	WeightUnit         string       `json:"weight_unit"`
	CostPerUnit        float64      `json:"cost_per_unit"`
	PortionsCount      int          `json:"portions_count"`
	TargetYieldPercent *float64     `json:"target_yield_percent,omitempty"`
	YieldPercent       float64      `json:"yield_percent"`
	CostPerPortion     float64      `json:"cost_per_portion"`
	VarianceFromTarget *float64     `json:"variance_from_target,omitempty"`
	BelowTarget        bool         `json:"below_target"`
}
