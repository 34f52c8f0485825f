// Package domain contains the recipe bank models. Costing fields are
// never stored on a recipe; they are recomputed from current ingredient
// prices on every read.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Recipe is a dish with a base serving count and an ordered list of
// ingredient lines.
type Recipe struct {
	ID                    snowflake.ID      `gorm:"primaryKey"`
	Name                  string            `gorm:"type:text;not null"`
	Category              string            `gorm:"type:text"`
	Servings              int               `gorm:"not null"` // base servings, > 0
	SellPrice             float64           `gorm:"not null;default:0"`
	TargetFoodCostPercent float64           `gorm:"not null;default:30"`
	YieldWeight           float64           `gorm:"not null;default:0"` // base yield weight
	YieldUnit             string            `gorm:"type:text"`          // mass unit of the yield weight
	Metadata              datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt             time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt             time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeIngredientLine references an ingredient by id only; the ledger
// owns the ingredient. Unit is the unit as written in the recipe and may
// differ from the ingredient's canonical unit.
type RecipeIngredientLine struct {
	ID                 snowflake.ID `gorm:"primaryKey"`
	RecipeID           snowflake.ID `gorm:"not null;index"`
	IngredientID       snowflake.ID `gorm:"not null;index"`
	Quantity           float64      `gorm:"not null"`
	Unit               string       `gorm:"type:text;not null"`
	WastePercent       float64      `gorm:"not null;default:0"` // trim waste, [0,100)
	CookingLossPercent float64      `gorm:"not null;default:0"` // [0,100)
	Position           int          `gorm:"not null;default:0"`
}

func (RecipeIngredientLine) TableName() string { return "recipe_ingredient_lines" }
