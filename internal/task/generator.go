package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/coach-lambda/internal/ai"
	"github.com/saulo-duarte/coach-lambda/internal/allocator"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/saulo-duarte/coach-lambda/internal/extract"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

const noActiveGoalsMessage = "アクティブな目標がありません。まず目標を設定してください。"

// GenerationError carries the raw model reply when no task could be parsed from it.
type GenerationError struct {
	Raw string
}

func (e *GenerationError) Error() string {
	return "no tasks could be parsed from the model reply"
}

type GoalSource interface {
	ActiveForAllocation(ctx context.Context) ([]allocator.Goal, error)
}

type SettingsSource interface {
	ForAllocation(ctx context.Context) (allocator.Settings, error)
}

type GeneratorService interface {
	Generate(ctx context.Context, req GenerateTasksRequest) (*GenerateTasksResponse, error)
}

type generatorService struct {
	provider  ai.Provider
	extractor extract.StructuredTextExtractor
	goals     GoalSource
	settings  SettingsSource
}

func NewGeneratorService(
	provider ai.Provider,
	extractor extract.StructuredTextExtractor,
	goals GoalSource,
	settings SettingsSource,
) GeneratorService {
	return &generatorService{
		provider:  provider,
		extractor: extractor,
		goals:     goals,
		settings:  settings,
	}
}

func (s *generatorService) Generate(ctx context.Context, req GenerateTasksRequest) (*GenerateTasksResponse, error) {
	log := config.WithContext(ctx)

	date, err := util.ParseLocalDate(req.Date)
	if err != nil {
		return nil, err
	}

	goals := req.Goals
	if goals == nil {
		if goals, err = s.goals.ActiveForAllocation(ctx); err != nil {
			return nil, fmt.Errorf("load goals: %w", err)
		}
	}

	var settings allocator.Settings
	if req.Settings != nil {
		settings = *req.Settings
	} else if settings, err = s.settings.ForAllocation(ctx); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	plan, err := allocator.Prepare(date, settings, goals)
	if errors.Is(err, allocator.ErrNoActiveGoals) {
		log.Info("No active goals, skipping task generation")
		return &GenerateTasksResponse{
			Tasks:   []extract.GeneratedTask{},
			Message: noActiveGoalsMessage,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	text, err := s.provider.Generate(ctx, ai.Request{
		System:   allocator.TaskGeneratorSystemPrompt,
		Messages: []ai.Message{{Role: ai.RoleUser, Content: plan.Prompt}},
	})
	if err != nil {
		log.WithError(err).Error("Task generation request failed")
		return nil, fmt.Errorf("generate tasks: %w", err)
	}

	payload := s.extractor.Extract(ctx, text, extract.KeyTasks)
	var tasks []extract.GeneratedTask
	if payload.Found() {
		tasks = extract.NormalizeGeneratedTasks(payload.Records)
	}
	if len(tasks) == 0 {
		log.WithField("outcome", payload.Outcome).Warn("Model reply contained no tasks")
		return nil, &GenerationError{Raw: text}
	}

	report := allocator.Check(plan.Budget, plan.Goals, tasks)
	entry := log.WithFields(logrus.Fields{
		"date":           date.String(),
		"goals":          len(plan.Goals),
		"tasks":          len(tasks),
		"budget_minutes": report.BudgetMinutes,
		"total_minutes":  report.TotalMinutes,
	})
	if report.OverBudget {
		entry.Warn("Generated tasks exceed the time budget")
	} else {
		entry.Info("Tasks generated")
	}

	return &GenerateTasksResponse{
		Tasks:   tasks,
		Message: fmt.Sprintf("%d件のタスクを生成しました", len(tasks)),
		Report:  &report,
	}, nil
}

// isValidationError reports whether err came from checking the caller's input.
func isValidationError(err error) bool {
	return errors.Is(err, util.ErrInvalidDate) ||
		errors.Is(err, allocator.ErrNegativeHours) ||
		errors.Is(err, allocator.ErrInvalidWeight)
}
