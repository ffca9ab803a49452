package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/coach-lambda/internal/allocator"
	"gorm.io/gorm"
)

type Goal struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `gorm:"type:varchar(10);not null;default:medium" json:"priority"`
	IsArchived  bool      `gorm:"not null;default:false" json:"isArchived"`
	TimeWeight  *int      `json:"timeWeight,omitempty"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// ToAllocation converts the stored goal into the allocator's input shape.
func (g *Goal) ToAllocation() allocator.Goal {
	return allocator.Goal{
		ID:          g.ID.String(),
		Title:       g.Title,
		Description: g.Description,
		Priority:    string(g.Priority),
		IsArchived:  g.IsArchived,
		TimeWeight:  g.TimeWeight,
	}
}
