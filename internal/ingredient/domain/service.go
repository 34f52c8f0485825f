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

	// UpdatePrice moves the current price to previous, stamps the new
	// price and appends a PriceUpdateEvent, all in one transaction.
	UpdatePrice(ctx context.Context, id string, req UpdatePriceRequest) (*PriceEventResponse, error)
	PriceHistory(ctx context.Context, id string) ([]PriceEventResponse, error)
	SetStock(ctx context.Context, id string, quantity float64) (*Response, error)
}

type CreateRequest struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	CurrentPrice float64 `json:"current_price"`
	Supplier     string  `json:"supplier"`
	StockOnHand  float64 `json:"stock_on_hand"`
}

type UpdateRequest struct {
	Name     *string `json:"name"`
	Supplier *string `json:"supplier"`
}

type UpdatePriceRequest struct {
	NewPrice float64     `json:"new_price"`
	Source   PriceSource `json:"source"`
}

type Response struct {
	ID            snowflake.ID `json:"id"`
	Name          string       `json:"name"`
	Unit          string       `json:"unit"`
	CurrentPrice  float64      `json:"current_price"`
	PreviousPrice float64      `json:"previous_price"`
	LastUpdated   time.Time    `json:"last_updated"`
	Supplier      string       `json:"supplier,omitempty"`
	StockOnHand   float64      `json:"stock_on_hand"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type PriceEventResponse struct {
	ID           snowflake.ID `json:"id"`
	IngredientID snowflake.ID `json:"ingredient_id"`
	OldPrice     float64      `json:"old_price"`
	NewPrice     float64      `json:"new_price"`
	Source       PriceSource  `json:"source"`
	CreatedAt    time.Time    `json:"created_at"`
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidUnit   = errors.New("invalid_unit")
	ErrInvalidPrice  = errors.New("invalid_price")
	ErrInvalidSource = errors.New("invalid_source")
	ErrInvalidStock  = errors.New("invalid_stock")
	ErrDuplicateName = errors.New("duplicate_ingredient_name")
)
