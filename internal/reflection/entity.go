package reflection

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
	"gorm.io/gorm"
)

// Reflection free-text fields are sealed with config.Seal before they reach the database.
type Reflection struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	Date          util.LocalDate `gorm:"type:date;not null;index" json:"date"`
	Type          ReflectionType `gorm:"type:varchar(10);not null" json:"type"`
	MoodScore     *int           `json:"moodScore,omitempty"`
	BusynessScore *int           `json:"busynessScore,omitempty"`
	Comment       string         `gorm:"type:text" json:"comment,omitempty"`
	Achievements  string         `gorm:"type:text" json:"achievements,omitempty"`
	Challenges    string         `gorm:"type:text" json:"challenges,omitempty"`
	NextActions   string         `gorm:"type:text" json:"nextActions,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (r *Reflection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Reflection) textFields() []*string {
	return []*string{&r.Comment, &r.Achievements, &r.Challenges, &r.NextActions}
}
