package task

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
	"gorm.io/gorm"
)

type Task struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GoalID        *uuid.UUID     `gorm:"type:uuid;index" json:"goalId,omitempty"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description,omitempty"`
	EstimatedTime *int           `json:"estimatedTime,omitempty"`
	Completed     bool           `gorm:"not null;default:false" json:"completed"`
	Date          util.LocalDate `gorm:"type:date;not null;index" json:"date"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Minutes is the planned duration, zero when unknown.
func (t *Task) Minutes() int {
	if t.EstimatedTime == nil {
		return 0
	}
	return *t.EstimatedTime
}
