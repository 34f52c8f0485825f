// Package domain contains yield test records and the trend analysis over
// them. Derived figures (yield percent, cost per portion) are recomputed
// from the stored weights on every read, never cached.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// YieldTest is one butchering/prep yield measurement.
type YieldTest struct {
	ID                 snowflake.ID `gorm:"primaryKey"`
	ItemName           string       `gorm:"type:text;not null;index"`
	Category           string       `gorm:"type:text"`
	Preparer           string       `gorm:"type:text"`
	TestDate           time.Time    `gorm:"not null;index"`
	GrossWeight        float64      `gorm:"not null"` // > 0
	UsableWeight       float64      `gorm:"not null"` // 0 <= usable <= gross
	WasteWeight        float64      `gorm:"not null"`
	WeightUnit         string       `gorm:"type:text"`
	CostPerUnit        float64      `gorm:"not null;default:0"` // per weight unit of gross weight
	PortionsCount      int          `gorm:"not null;default:0"`
	TargetYieldPercent *float64
	CreatedAt          time.Time `gorm:"not null"`
}

func (YieldTest) TableName() string { return "yield_tests" }

// YieldPercent is the usable share of the gross weight.
func (t YieldTest) YieldPercent() float64 {
	if t.GrossWeight <= 0 {
		return 0
	}
	return t.UsableWeight / t.GrossWeight * 100
}

// CostPerPortion spreads the full gross cost over the portions produced.
// Zero portions marks the figure unavailable rather than dividing.
func (t YieldTest) CostPerPortion() float64 {
	if t.PortionsCount <= 0 {
		return 0
	}
	return t.GrossWeight * t.CostPerUnit / float64(t.PortionsCount)
}
