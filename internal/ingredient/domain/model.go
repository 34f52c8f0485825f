// Package domain contains the ingredient ledger models. The ledger owns
// ingredient prices; everything downstream (costing, scaling, ordering)
// reads prices through it and never mutates them directly.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PriceSource records where a price change came from.
type PriceSource string

const (
	SourceInvoice PriceSource = "invoice"
	SourceManual  PriceSource = "manual"
)

// Ingredient is a purchasable item priced per canonical unit.
type Ingredient struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	Name          string       `gorm:"type:text;not null;uniqueIndex"`
	Unit          string       `gorm:"type:text;not null"` // canonical measurement unit
	CurrentPrice  float64      `gorm:"not null"`           // per canonical unit
	PreviousPrice float64      `gorm:"not null;default:0"`
	LastUpdated   time.Time    `gorm:"not null"`
	Supplier      string       `gorm:"type:text"`
	StockOnHand   float64      `gorm:"not null;default:0"` // in canonical unit
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Ingredient) TableName() string { return "ingredients" }

// PriceUpdateEvent is one entry in the append-only price audit log.
// Events are never updated or deleted.
type PriceUpdateEvent struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	IngredientID snowflake.ID `gorm:"not null;index"`
	OldPrice     float64      `gorm:"not null"`
	NewPrice     float64      `gorm:"not null"`
	Source       PriceSource  `gorm:"type:text;not null"`
	CreatedAt    time.Time    `gorm:"not null"`
}

func (PriceUpdateEvent) TableName() string { return "price_update_events" }
