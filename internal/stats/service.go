package stats

import (
	"context"
	"errors"
	"time"

	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/saulo-duarte/coach-lambda/internal/goal"
	"github.com/saulo-duarte/coach-lambda/internal/task"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
)

var ErrInvalidMonth = errors.New("month must be between 1 and 12")

type TaskSource interface {
	ListBetween(ctx context.Context, from, to util.LocalDate) ([]*task.Task, error)
}

type GoalSource interface {
	ListGoals(ctx context.Context, includeArchived bool) ([]*goal.Goal, error)
}

type StatsService interface {
	Daily(ctx context.Context, date util.LocalDate) (*PeriodStats, error)
	Weekly(ctx context.Context, date util.LocalDate) (*PeriodStats, error)
	Monthly(ctx context.Context, year int, month time.Month) (*PeriodStats, error)
}

type statsService struct {
	tasks TaskSource
	goals GoalSource
}

func NewService(tasks TaskSource, goals GoalSource) StatsService {
	return &statsService{tasks: tasks, goals: goals}
}

func (s *statsService) Daily(ctx context.Context, date util.LocalDate) (*PeriodStats, error) {
	from, to := DailyRange(date)
	return s.period(ctx, PeriodDaily, from, to, false)
}

func (s *statsService) Weekly(ctx context.Context, date util.LocalDate) (*PeriodStats, error) {
	from, to := WeeklyRange(date)
	return s.period(ctx, PeriodWeekly, from, to, true)
}

func (s *statsService) Monthly(ctx context.Context, year int, month time.Month) (*PeriodStats, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}
	from, to := MonthlyRange(year, month)
	return s.period(ctx, PeriodMonthly, from, to, true)
}

func (s *statsService) period(ctx context.Context, period string, from, to util.LocalDate, withDays bool) (*PeriodStats, error) {
	log := config.WithContext(ctx)

	tasks, err := s.tasks.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.ListGoals(ctx, true)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string, len(goals))
	for _, g := range goals {
		titles[g.ID.String()] = g.Title
	}

	entries := make([]Entry, 0, len(tasks))
	for _, t := range tasks {
		e := Entry{Date: t.Date, Minutes: t.Minutes(), Completed: t.Completed}
		if t.GoalID != nil {
			e.GoalID = t.GoalID.String()
		}
		entries = append(entries, e)
	}

	out := &PeriodStats{
		Period:  period,
		From:    from,
		To:      to,
		Summary: Summarize(entries, titles),
	}
	if withDays {
		out.Days = Days(entries, from, to)
	}
	if period == PeriodMonthly {
		out.Weeks = Weeks(entries, from, to, titles)
	}

	log.WithField("period", period).WithField("tasks", out.TotalTasks).Debug("Stats computed")
	return out, nil
}
