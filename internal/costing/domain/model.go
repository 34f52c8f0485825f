// Package domain contains persistence models for price-change propagation.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// RecipeCostImpact captures how one price change moved one recipe's cost.
// Rows are written once per propagation run and never updated.
type RecipeCostImpact struct {
	ID                 snowflake.ID `gorm:"primaryKey"`
	PriceEventID       snowflake.ID `gorm:"not null;index"`
	IngredientID       snowflake.ID `gorm:"not null;index"`
	RecipeID           snowflake.ID `gorm:"not null;index"`
	RecipeName         string       `gorm:"type:text;not null"`
	OldCost            float64      `gorm:"not null"`
	NewCost            float64      `gorm:"not null"`
	CostChange         float64      `gorm:"not null"`
	CostChangePercent  float64      `gorm:"not null"`
	OldFoodCostPercent float64      `gorm:"not null"`
	NewFoodCostPercent float64      `gorm:"not null"`
	WasOverBudget      bool         `gorm:"not null"`
	IsNowOverBudget    bool         `gorm:"not null"`
	HasUnmatchedLines  bool         `gorm:"not null"`
	CreatedAt          time.Time    `gorm:"not null"`
}

func (RecipeCostImpact) TableName() string { return "recipe_cost_impacts" }
