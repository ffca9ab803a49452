package goal

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/coach-lambda/internal/allocator"
	"github.com/saulo-duarte/coach-lambda/internal/auth"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/saulo-duarte/coach-lambda/internal/extract"
	"github.com/sirupsen/logrus"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidID         = errors.New("invalid id format")
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidPriority   = errors.New("priority must be high, medium or low")
	ErrInvalidTimeWeight = errors.New("time weight must be between 1 and 5")
)

type GoalService interface {
	CreateGoal(ctx context.Context, dto CreateGoalDTO) (*Goal, error)
	ListGoals(ctx context.Context, includeArchived bool) ([]*Goal, error)
	GetGoal(ctx context.Context, id string) (*Goal, error)
	UpdateGoal(ctx context.Context, id string, dto UpdateGoalDTO) (*Goal, error)
	ArchiveGoal(ctx context.Context, id string) (*Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	AdoptSuggestions(ctx context.Context, suggestions []extract.GoalSuggestion) (int, error)
	ActiveForAllocation(ctx context.Context) ([]allocator.Goal, error)
}

type goalService struct {
	repo GoalRepository
}

func NewService(repo GoalRepository) GoalService {
	return &goalService{repo: repo}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without a user scope", action)
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func validateTimeWeight(w *int) error {
	if w == nil {
		return nil
	}
	if *w < allocator.MinWeight || *w > allocator.MaxWeight {
		return ErrInvalidTimeWeight
	}
	return nil
}

func (s *goalService) CreateGoal(ctx context.Context, dto CreateGoalDTO) (*Goal, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create goal")
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if dto.Priority == "" {
		dto.Priority = PriorityMedium
	}
	if !dto.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if err := validateTimeWeight(dto.TimeWeight); err != nil {
		return nil, err
	}

	g := &Goal{
		Title:       title,
		Description: dto.Description,
		Priority:    dto.Priority,
		TimeWeight:  dto.TimeWeight,
		UserID:      userID,
	}
	if err := s.repo.Create(g); err != nil {
		log.WithError(err).Error("Failed to create goal")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal created successfully")
	return g, nil
}

func (s *goalService) ListGoals(ctx context.Context, includeArchived bool) ([]*Goal, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list goals")
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.ListByUser(userID, includeArchived)
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		return nil, err
	}
	return goals, nil
}

func (s *goalService) GetGoal(ctx context.Context, id string) (*Goal, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "find goal")
	if err != nil {
		return nil, err
	}
	return s.find(log, id, userID)
}

func (s *goalService) find(log logrus.FieldLogger, id string, userID uuid.UUID) (*Goal, error) {
	goalID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid goal ID")
		return nil, ErrInvalidID
	}

	g, err := s.repo.FindByIDAndUserID(goalID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithField("goal_id", id).Warn("Goal not found or does not belong to user")
			return nil, ErrGoalNotFound
		}
		log.WithError(err).Error("Error finding goal by ID")
		return nil, err
	}
	return g, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, id string, dto UpdateGoalDTO) (*Goal, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "update goal")
	if err != nil {
		return nil, err
	}

	if err := validateTimeWeight(dto.TimeWeight); err != nil {
		return nil, err
	}
	if dto.Priority != nil && !dto.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if dto.Title != nil && strings.TrimSpace(*dto.Title) == "" {
		return nil, ErrTitleRequired
	}

	existing, err := s.find(log, id, userID)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		existing.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		existing.Description = *dto.Description
	}
	if dto.Priority != nil {
		existing.Priority = *dto.Priority
	}
	if dto.IsArchived != nil {
		existing.IsArchived = *dto.IsArchived
	}
	if dto.TimeWeight != nil {
		existing.TimeWeight = dto.TimeWeight
	} else if dto.ClearTimeWeight {
		existing.TimeWeight = nil
	}

	if err := s.repo.Update(existing); err != nil {
		log.WithError(err).Error("Failed to update goal")
		return nil, err
	}

	log.WithField("goal_id", existing.ID).Info("Goal updated successfully")
	return existing, nil
}

func (s *goalService) ArchiveGoal(ctx context.Context, id string) (*Goal, error) {
	archived := true
	return s.UpdateGoal(ctx, id, UpdateGoalDTO{IsArchived: &archived})
}

func (s *goalService) DeleteGoal(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "delete goal")
	if err != nil {
		return err
	}

	goalID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidID
	}

	if err := s.repo.Delete(goalID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrGoalNotFound
		}
		log.WithError(err).Error("Failed to delete goal")
		return err
	}

	log.WithField("goal_id", id).Info("Goal deleted successfully")
	return nil
}

// AdoptSuggestions stores coach suggestions as active, unweighted goals in one transaction.
func (s *goalService) AdoptSuggestions(ctx context.Context, suggestions []extract.GoalSuggestion) (int, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "adopt goals")
	if err != nil {
		return 0, err
	}

	goals := make([]*Goal, 0, len(suggestions))
	for _, sg := range suggestions {
		goals = append(goals, &Goal{
			Title:       sg.Title,
			Description: sg.Description,
			Priority:    Priority(extract.NormalizePriority(sg.Priority)),
			UserID:      userID,
		})
	}

	if err := s.repo.CreateBatch(goals); err != nil {
		log.WithError(err).Error("Failed to adopt goals")
		return 0, err
	}

	log.WithField("count", len(goals)).Info("Goals adopted")
	return len(goals), nil
}

func (s *goalService) ActiveForAllocation(ctx context.Context) ([]allocator.Goal, error) {
	goals, err := s.ListGoals(ctx, false)
	if err != nil {
		return nil, err
	}

	out := make([]allocator.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.ToAllocation())
	}
	return out, nil
}
