package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/coach-lambda/internal/allocator"
	"github.com/saulo-duarte/coach-lambda/internal/auth"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidHours = errors.New("hours per day must be between 0 and 24")
)

type SettingsService interface {
	GetSettings(ctx context.Context) (*UserSettings, error)
	UpdateSettings(ctx context.Context, dto UpdateSettingsDTO) (*UserSettings, error)
	ForAllocation(ctx context.Context) (allocator.Settings, error)
}

type settingsService struct {
	repo SettingsRepository
}

func NewService(repo SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func validHours(h *float64) bool {
	return h == nil || (*h >= 0 && *h <= MaxHoursPerDay)
}

// GetSettings falls back to the defaults for users who never saved settings.
func (s *settingsService) GetSettings(ctx context.Context) (*UserSettings, error) {
	log := config.WithContext(ctx)
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to read settings without a user scope")
		return nil, ErrUnauthorized
	}
	return s.load(log, userID)
}

func (s *settingsService) load(log logrus.FieldLogger, userID uuid.UUID) (*UserSettings, error) {
	stored, err := s.repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Defaults(userID), nil
		}
		log.WithError(err).Error("Failed to load settings")
		return nil, err
	}
	return stored, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, dto UpdateSettingsDTO) (*UserSettings, error) {
	log := config.WithContext(ctx)
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to update settings without a user scope")
		return nil, ErrUnauthorized
	}

	if !validHours(dto.WeekdayHoursPerDay) || !validHours(dto.WeekendHoursPerDay) {
		return nil, ErrInvalidHours
	}

	current, err := s.load(log, userID)
	if err != nil {
		return nil, err
	}
	if dto.WeekdayHoursPerDay != nil {
		current.WeekdayHoursPerDay = *dto.WeekdayHoursPerDay
	}
	if dto.WeekendHoursPerDay != nil {
		current.WeekendHoursPerDay = *dto.WeekendHoursPerDay
	}

	if err := s.repo.Upsert(current); err != nil {
		log.WithError(err).Error("Failed to save settings")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"weekday_hours": current.WeekdayHoursPerDay,
		"weekend_hours": current.WeekendHoursPerDay,
	}).Info("Settings saved")
	return current, nil
}

func (s *settingsService) ForAllocation(ctx context.Context) (allocator.Settings, error) {
	us, err := s.GetSettings(ctx)
	if err != nil {
		return allocator.Settings{}, err
	}
	return us.ToAllocation(), nil
}
