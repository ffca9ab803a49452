package reflection

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/coach-lambda/internal/auth"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrReflectionNotFound = errors.New("reflection not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidID          = errors.New("invalid id format")
	ErrInvalidType        = errors.New("type must be daily, weekly or monthly")
	ErrInvalidScore       = errors.New("scores must be between 1 and 5")
)

type ReflectionService interface {
	CreateReflection(ctx context.Context, dto CreateReflectionDTO) (*Reflection, error)
	ListReflections(ctx context.Context, t string) ([]*Reflection, error)
	UpdateReflection(ctx context.Context, id string, dto UpdateReflectionDTO) (*Reflection, error)
	DeleteReflection(ctx context.Context, id string) error
}

type reflectionService struct {
	repo ReflectionRepository
}

func NewService(repo ReflectionRepository) ReflectionService {
	return &reflectionService{repo: repo}
}

func validScore(s *int) bool {
	return s == nil || (*s >= MinScore && *s <= MaxScore)
}

func sealed(r *Reflection) (*Reflection, error) {
	out := *r
	for _, f := range out.textFields() {
		s, err := config.Seal(*f)
		if err != nil {
			return nil, fmt.Errorf("seal reflection: %w", err)
		}
		*f = s
	}
	return &out, nil
}

func opened(r *Reflection) (*Reflection, error) {
	for _, f := range r.textFields() {
		s, err := config.Open(*f)
		if err != nil {
			return nil, fmt.Errorf("open reflection: %w", err)
		}
		*f = s
	}
	return r, nil
}

func (s *reflectionService) userID(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without a user scope", action)
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func (s *reflectionService) CreateReflection(ctx context.Context, dto CreateReflectionDTO) (*Reflection, error) {
	log := config.WithContext(ctx)
	userID, err := s.userID(ctx, log, "create reflection")
	if err != nil {
		return nil, err
	}

	if !dto.Type.IsValid() {
		return nil, ErrInvalidType
	}
	if !validScore(dto.MoodScore) || !validScore(dto.BusynessScore) {
		return nil, ErrInvalidScore
	}
	date, err := util.ParseLocalDate(dto.Date)
	if err != nil {
		return nil, err
	}

	ref := &Reflection{
		UserID:        userID,
		Date:          date,
		Type:          dto.Type,
		MoodScore:     dto.MoodScore,
		BusynessScore: dto.BusynessScore,
		Comment:       dto.Comment,
		Achievements:  dto.Achievements,
		Challenges:    dto.Challenges,
		NextActions:   dto.NextActions,
	}

	stored, err := sealed(ref)
	if err != nil {
		log.WithError(err).Error("Failed to encrypt reflection")
		return nil, err
	}
	if err := s.repo.Create(stored); err != nil {
		log.WithError(err).Error("Failed to create reflection")
		return nil, err
	}
	ref.ID = stored.ID
	ref.CreatedAt = stored.CreatedAt
	ref.UpdatedAt = stored.UpdatedAt

	log.WithFields(logrus.Fields{
		"reflection_id": ref.ID,
		"type":          ref.Type,
	}).Info("Reflection created successfully")
	return ref, nil
}

func (s *reflectionService) ListReflections(ctx context.Context, t string) ([]*Reflection, error) {
	log := config.WithContext(ctx)
	userID, err := s.userID(ctx, log, "list reflections")
	if err != nil {
		return nil, err
	}

	kind := ReflectionType(t)
	if kind != "" && !kind.IsValid() {
		return nil, ErrInvalidType
	}

	refs, err := s.repo.ListByUser(userID, kind)
	if err != nil {
		log.WithError(err).Error("Failed to list reflections")
		return nil, err
	}
	for _, r := range refs {
		if _, err := opened(r); err != nil {
			log.WithError(err).WithField("reflection_id", r.ID).Error("Failed to decrypt reflection")
			return nil, err
		}
	}
	return refs, nil
}

func (s *reflectionService) UpdateReflection(ctx context.Context, id string, dto UpdateReflectionDTO) (*Reflection, error) {
	log := config.WithContext(ctx)
	userID, err := s.userID(ctx, log, "update reflection")
	if err != nil {
		return nil, err
	}

	if !validScore(dto.MoodScore) || !validScore(dto.BusynessScore) {
		return nil, ErrInvalidScore
	}
	refID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	existing, err := s.repo.FindByIDAndUserID(refID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrReflectionNotFound
		}
		log.WithError(err).Error("Error finding reflection")
		return nil, err
	}
	if _, err := opened(existing); err != nil {
		return nil, err
	}

	if dto.MoodScore != nil {
		existing.MoodScore = dto.MoodScore
	}
	if dto.BusynessScore != nil {
		existing.BusynessScore = dto.BusynessScore
	}
	if dto.Comment != nil {
		existing.Comment = *dto.Comment
	}
	if dto.Achievements != nil {
		existing.Achievements = *dto.Achievements
	}
	if dto.Challenges != nil {
		existing.Challenges = *dto.Challenges
	}
	if dto.NextActions != nil {
		existing.NextActions = *dto.NextActions
	}

	stored, err := sealed(existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(stored); err != nil {
		log.WithError(err).Error("Failed to update reflection")
		return nil, err
	}
	existing.UpdatedAt = stored.UpdatedAt

	log.WithField("reflection_id", existing.ID).Info("Reflection updated successfully")
	return existing, nil
}

func (s *reflectionService) DeleteReflection(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	userID, err := s.userID(ctx, log, "delete reflection")
	if err != nil {
		return err
	}

	refID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidID
	}

	if err := s.repo.Delete(refID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrReflectionNotFound
		}
		log.WithError(err).Error("Failed to delete reflection")
		return err
	}

	log.WithField("reflection_id", id).Info("Reflection deleted successfully")
	return nil
}
