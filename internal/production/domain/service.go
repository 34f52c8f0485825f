package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidID     = errors.New("invalid_prep_task_id")
	ErrNotFound      = errors.New("prep_task_not_found")
	ErrInvalidRecipe = errors.New("invalid_recipe_reference")
	ErrInvalidScale  = errors.New("invalid_scale_factor")
	ErrInvalidStatus = errors.New("invalid_task_status")
	ErrInvalidDate   = errors.New("invalid_scheduled_date")
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, filter ListFilter) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	RecipeID      string    `json:"recipe_id"`
	ScaleFactor   float64   `json:"scale_factor"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Notes         string    `json:"notes"`
}

type UpdateRequest struct {
	ScaleFactor   *float64    `json:"scale_factor,omitempty"`
	ScheduledDate *time.Time  `json:"scheduled_date,omitempty"`
	Status        *TaskStatus `json:"status,omitempty"`
	Notes         *string     `json:"notes,omitempty"`
}

type ListFilter struct {
	Status       TaskStatus
	ScheduledFor *time.Time
}

type Response struct {
	ID            snowflake.ID `json:"id"`
	RecipeID      snowflake.ID `json:"recipe_id"`
	RecipeName    string       `json:"recipe_name"`
	ScaleFactor   float64      `json:"scale_factor"`
	ScheduledDate time.Time    `json:"scheduled_date"`
	Status        TaskStatus   `json:"status"`
	Notes         string       `json:"notes"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
