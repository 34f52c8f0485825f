package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ShortfallSnapshot is a point-in-time record of purchasing demand,
// written by the nightly aggregation job so morning order sheets do not
// depend on the engine being up.
type ShortfallSnapshot struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	IngredientID      snowflake.ID `gorm:"index" json:"ingredient_id"`
	IngredientName    string       `json:"ingredient_name"`
	Unit              string       `json:"unit"`
	RequiredQuantity  float64      `json:"required_quantity"`
	StockOnHand       float64      `json:"stock_on_hand"`
	ShortfallQuantity float64      `json:"shortfall_quantity"`
	Urgency           Urgency      `json:"urgency"`
	EstimatedCost     float64      `json:"estimated_cost"`
	Supplier          string       `json:"supplier"`
	SnapshotDate      time.Time    `gorm:"index" json:"snapshot_date"`
	CreatedAt         time.Time    `json:"created_at"`
}

func (ShortfallSnapshot) TableName() string {
	return "shortfall_snapshots"
}
