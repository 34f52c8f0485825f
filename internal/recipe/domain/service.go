package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type LineRequest struct {
	IngredientID       string  `json:"ingredient_id"`
	Quantity           float64 `json:"quantity"`
	Unit               string  `json:"unit"`
	WastePercent       float64 `json:"waste_percent"`
	CookingLossPercent float64 `json:"cooking_loss_percent"`
}

type CreateRequest struct {
	Name                  string         `json:"name"`
	Category              string         `json:"category"`
	Servings              int            `json:"servings"`
	SellPrice             float64        `json:"sell_price"`
	TargetFoodCostPercent float64        `json:"target_food_cost_percent"`
	YieldWeight           float64        `json:"yield_weight"`
	YieldUnit             string         `json:"yield_unit"`
	Lines                 []LineRequest  `json:"lines"`
	Metadata              map[string]any `json:"metadata"`
}

type UpdateRequest struct {
	Name                  *string       `json:"name"`
	Category              *string       `json:"category"`
	Servings              *int          `json:"servings"`
	SellPrice             *float64      `json:"sell_price"`
	TargetFoodCostPercent *float64      `json:"target_food_cost_percent"`
	YieldWeight           *float64      `json:"yield_weight"`
	YieldUnit             *string       `json:"yield_unit"`
	Lines                 []LineRequest `json:"lines"` // nil keeps existing lines, non-nil replaces them
}

// Response carries the stored recipe plus its derived costing, recomputed
// from the current ledger on every read.
type Response struct {
	ID                    snowflake.ID  `json:"id"`
	Name                  string        `json:"name"`
	Category              string        `json:"category,omitempty"`
	Servings              int           `json:"servings"`
	SellPrice             float64       `json:"sell_price"`
	TargetFoodCostPercent float64       `json:"target_food_cost_percent"`
	YieldWeight           float64       `json:"yield_weight,omitempty"`
	YieldUnit             string        `json:"yield_unit,omitempty"`
	Costing               CostBreakdown `json:"costing"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidServings    = errors.New("invalid_servings")
	ErrInvalidSellPrice   = errors.New("invalid_sell_price")
	ErrInvalidTargetPct   = errors.New("invalid_target_food_cost_percent")
	ErrInvalidYieldWeight = errors.New("invalid_yield_weight")
	ErrInvalidLine        = errors.New("invalid_line")
	ErrInvalidWaste       = errors.New("invalid_waste_percent")
	ErrInvalidCookingLoss = errors.New("invalid_cooking_loss_percent")
)
