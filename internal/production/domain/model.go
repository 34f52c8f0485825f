package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type TaskStatus string

const (
	StatusPlanned    TaskStatus = "planned"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PrepTask schedules a recipe to be produced at a multiple of its base
// batch. ScaleFactor multiplies every ingredient line; ordering reads
// open tasks to aggregate purchasing demand.
type PrepTask struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	RecipeID      snowflake.ID `gorm:"index" json:"recipe_id"`
	ScaleFactor   float64      `json:"scale_factor"`
	ScheduledDate time.Time    `gorm:"index" json:"scheduled_date"`
	Status        TaskStatus   `gorm:"index" json:"status"`
	Notes         string       `json:"notes"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (PrepTask) TableName() string {
	return "prep_tasks"
}
