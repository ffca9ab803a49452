package settings

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

type SettingsRepository interface {
	FindByUserID(userID uuid.UUID) (*UserSettings, error)
	Upsert(s *UserSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FindByUserID(userID uuid.UUID) (*UserSettings, error) {
	var s UserSettings
	if err := r.db.First(&s, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Upsert(s *UserSettings) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"weekday_hours_per_day", "weekend_hours_per_day", "updated_at"}),
	}).Create(s).Error
}
