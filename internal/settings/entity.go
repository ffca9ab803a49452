package settings

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/coach-lambda/internal/allocator"
)

const (
	DefaultWeekdayHours = 2
	DefaultWeekendHours = 4
	MaxHoursPerDay      = 24
)

type UserSettings struct {
	UserID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	WeekdayHoursPerDay float64   `gorm:"not null" json:"weekdayHoursPerDay"`
	WeekendHoursPerDay float64   `gorm:"not null" json:"weekendHoursPerDay"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func Defaults(userID uuid.UUID) *UserSettings {
	return &UserSettings{
		UserID:             userID,
		WeekdayHoursPerDay: DefaultWeekdayHours,
		WeekendHoursPerDay: DefaultWeekendHours,
	}
}

func (s *UserSettings) ToAllocation() allocator.Settings {
	return allocator.Settings{
		WeekdayHoursPerDay: s.WeekdayHoursPerDay,
		WeekendHoursPerDay: s.WeekendHoursPerDay,
	}
}
