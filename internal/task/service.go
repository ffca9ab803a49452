package task

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/coach-lambda/internal/auth"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/saulo-duarte/coach-lambda/internal/goal"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidID            = errors.New("invalid id format")
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidEstimatedTime = errors.New("estimated time must be a positive number of minutes")
	ErrGoalNotFound         = goal.ErrGoalNotFound
)

type GoalLookup interface {
	GetGoal(ctx context.Context, id string) (*goal.Goal, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, dto CreateTaskDTO) (*Task, error)
	ListTasks(ctx context.Context, date string) ([]*Task, error)
	FindByID(ctx context.Context, id string) (*Task, error)
	UpdateTask(ctx context.Context, id string, dto UpdateTaskDTO) (*Task, error)
	DeleteByID(ctx context.Context, id string) error
	SaveBatch(ctx context.Context, dto SaveBatchDTO) ([]*Task, error)
	ListBetween(ctx context.Context, from, to util.LocalDate) ([]*Task, error)
}

type taskService struct {
	repo  TaskRepository
	goals GoalLookup
}

func NewService(repo TaskRepository, goals GoalLookup) TaskService {
	return &taskService{repo: repo, goals: goals}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without a user scope", action)
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsedID, nil
}

func validEstimatedTime(minutes *int) bool {
	return minutes == nil || *minutes > 0
}

func (s *taskService) resolveGoal(ctx context.Context, log logrus.FieldLogger, goalID *string) (*uuid.UUID, error) {
	if goalID == nil || *goalID == "" {
		return nil, nil
	}
	g, err := s.goals.GetGoal(ctx, *goalID)
	if err != nil {
		if errors.Is(err, goal.ErrGoalNotFound) || errors.Is(err, goal.ErrInvalidID) {
			log.WithField("goal_id", *goalID).Warn("Goal not found or does not belong to the user")
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return &g.ID, nil
}

func (s *taskService) CreateTask(ctx context.Context, dto CreateTaskDTO) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create task")
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !validEstimatedTime(dto.EstimatedTime) {
		return nil, ErrInvalidEstimatedTime
	}
	date, err := util.ParseLocalDate(dto.Date)
	if err != nil {
		return nil, err
	}

	goalID, err := s.resolveGoal(ctx, log, dto.GoalID)
	if err != nil {
		return nil, err
	}

	t := &Task{
		GoalID:        goalID,
		Title:         title,
		Description:   dto.Description,
		EstimatedTime: dto.EstimatedTime,
		Date:          date,
		UserID:        userID,
	}
	if err := s.repo.Create(t); err != nil {
		log.WithError(err).Error("Failed to create task")
		return nil, err
	}

	log.WithField("task_id", t.ID).Info("Task created successfully")
	return t, nil
}

// ListTasks lists every task of the user, or only those on date when given.
func (s *taskService) ListTasks(ctx context.Context, date string) ([]*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list tasks")
	if err != nil {
		return nil, err
	}

	var tasks []*Task
	if date == "" {
		tasks, err = s.repo.ListByUser(userID)
	} else {
		day, perr := util.ParseLocalDate(date)
		if perr != nil {
			return nil, perr
		}
		tasks, err = s.repo.ListByUserAndDate(userID, day)
	}
	if err != nil {
		log.WithError(err).Error("Failed to list tasks by user")
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) ListBetween(ctx context.Context, from, to util.LocalDate) ([]*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list tasks in range")
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListByUserBetween(userID, from, to)
	if err != nil {
		log.WithError(err).Error("Failed to list tasks in range")
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) FindByID(ctx context.Context, id string) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "find task")
	if err != nil {
		return nil, err
	}
	return s.find(log, id, userID)
}

func (s *taskService) find(log logrus.FieldLogger, id string, userID uuid.UUID) (*Task, error) {
	taskID, err := parseUUID(log, id, "task")
	if err != nil {
		return nil, err
	}

	t, err := s.repo.FindByIdAndUserId(taskID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithFields(logrus.Fields{
				"task_id": id,
				"user_id": userID,
			}).Warn("Task not found or does not belong to user")
			return nil, ErrTaskNotFound
		}
		log.WithError(err).Error("Error finding task by ID")
		return nil, err
	}
	return t, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id string, dto UpdateTaskDTO) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "update task")
	if err != nil {
		return nil, err
	}

	if dto.Title != nil && strings.TrimSpace(*dto.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !validEstimatedTime(dto.EstimatedTime) {
		return nil, ErrInvalidEstimatedTime
	}
	var date *util.LocalDate
	if dto.Date != nil {
		parsed, err := util.ParseLocalDate(*dto.Date)
		if err != nil {
			return nil, err
		}
		date = &parsed
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
	if dto.EstimatedTime != nil {
		existing.EstimatedTime = dto.EstimatedTime
	}
	if dto.Completed != nil {
		existing.Completed = *dto.Completed
	}
	if date != nil {
		existing.Date = *date
	}

	if err := s.repo.Update(existing); err != nil {
		log.WithError(err).Error("Failed to update task")
		return nil, err
	}

	log.WithField("task_id", existing.ID).Info("Task updated successfully")
	return existing, nil
}

func (s *taskService) DeleteByID(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "delete task")
	if err != nil {
		return err
	}

	taskID, err := parseUUID(log, id, "task")
	if err != nil {
		return err
	}

	if err := s.repo.Delete(taskID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrTaskNotFound
		}
		log.WithError(err).Error("Failed to delete task")
		return err
	}

	log.WithField("task_id", id).Info("Task deleted successfully")
	return nil
}

// SaveBatch persists a generated batch for one date in a single transaction.
// Records pointing at unknown goals are kept without a goal link.
func (s *taskService) SaveBatch(ctx context.Context, dto SaveBatchDTO) ([]*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "save task batch")
	if err != nil {
		return nil, err
	}

	date, err := util.ParseLocalDate(dto.Date)
	if err != nil {
		return nil, err
	}

	tasks := make([]*Task, 0, len(dto.Tasks))
	for _, gt := range dto.Tasks {
		t := &Task{
			Title:       strings.TrimSpace(gt.Title),
			Description: gt.Description,
			Date:        date,
			UserID:      userID,
		}
		if gt.EstimatedTime > 0 {
			minutes := gt.EstimatedTime
			t.EstimatedTime = &minutes
		}
		if gt.GoalID != "" {
			goalID, err := s.resolveGoal(ctx, log, &gt.GoalID)
			if err != nil && !errors.Is(err, ErrGoalNotFound) {
				return nil, err
			}
			t.GoalID = goalID
		}
		tasks = append(tasks, t)
	}

	if err := s.repo.CreateBatch(tasks); err != nil {
		log.WithError(err).Error("Failed to save task batch")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"date":  date.String(),
		"count": len(tasks),
	}).Info("Task batch saved")
	return tasks, nil
}
