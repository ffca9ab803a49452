// Package allocator turns active goals, their time weights and a daily hour
// budget into a generation instruction, and checks the returned task batch
// against that budget.
package allocator

import (
	"errors"
	"math"

	"github.com/saulo-duarte/coach-lambda/internal/extract"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
)

const (
	MinWeight     = 1
	MaxWeight     = 5
	NeutralWeight = 3
)

var (
	ErrNoActiveGoals = errors.New("no active goals")
	ErrNegativeHours = errors.New("hours per day must not be negative")
	ErrInvalidWeight = errors.New("time weight must be between 1 and 5")
)

type Goal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	IsArchived  bool   `json:"isArchived"`
	TimeWeight  *int   `json:"timeWeight,omitempty"`
}

// Weight returns the goal's time weight, or NeutralWeight when unweighted.
func (g Goal) Weight() int {
	if g.TimeWeight == nil {
		return NeutralWeight
	}
	return *g.TimeWeight
}

type Settings struct {
	WeekdayHoursPerDay float64 `json:"weekdayHoursPerDay"`
	WeekendHoursPerDay float64 `json:"weekendHoursPerDay"`
}

func (s Settings) Validate() error {
	if s.WeekdayHoursPerDay < 0 || s.WeekendHoursPerDay < 0 {
		return ErrNegativeHours
	}
	return nil
}

type Budget struct {
	Date      util.LocalDate `json:"date"`
	IsWeekend bool           `json:"isWeekend"`
	Hours     float64        `json:"hours"`
	Minutes   float64        `json:"minutes"`
}

// BudgetFor picks the weekend or weekday allowance for date.
func BudgetFor(date util.LocalDate, settings Settings) Budget {
	weekend := date.IsWeekend()
	hours := settings.WeekdayHoursPerDay
	if weekend {
		hours = settings.WeekendHoursPerDay
	}
	return Budget{
		Date:      date,
		IsWeekend: weekend,
		Hours:     hours,
		Minutes:   hours * 60,
	}
}

// ActiveGoals drops archived goals and keeps the caller's order.
func ActiveGoals(goals []Goal) []Goal {
	active := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if !g.IsArchived {
			active = append(active, g)
		}
	}
	return active
}

func ValidateWeights(goals []Goal) error {
	for _, g := range goals {
		if g.TimeWeight == nil {
			continue
		}
		if w := *g.TimeWeight; w < MinWeight || w > MaxWeight {
			return ErrInvalidWeight
		}
	}
	return nil
}

type Share struct {
	GoalID  string `json:"goalId"`
	Weight  int    `json:"weight"`
	Minutes int    `json:"minutes"`
}

// Shares splits the budget proportionally to goal weights, flooring each share.
func Shares(budget Budget, goals []Goal) []Share {
	total := 0
	for _, g := range goals {
		total += g.Weight()
	}
	shares := make([]Share, 0, len(goals))
	for _, g := range goals {
		minutes := 0
		if total > 0 {
			minutes = int(budget.Minutes * float64(g.Weight()) / float64(total))
		}
		shares = append(shares, Share{GoalID: g.ID, Weight: g.Weight(), Minutes: minutes})
	}
	return shares
}

type Report struct {
	BudgetMinutes float64 `json:"budgetMinutes"`
	TotalMinutes  int     `json:"totalMinutes"`
	OverBudget    bool    `json:"overBudget"`
	UnknownGoals  int     `json:"unknownGoals"`
}

// Check sums the batch against the budget. The budget is advisory: nothing is
// removed, the caller only learns whether the generator respected it.
func Check(budget Budget, goals []Goal, tasks []extract.GeneratedTask) Report {
	known := make(map[string]struct{}, len(goals))
	for _, g := range goals {
		known[g.ID] = struct{}{}
	}

	report := Report{BudgetMinutes: budget.Minutes}
	for _, t := range tasks {
		report.TotalMinutes = addMinutes(report.TotalMinutes, t.EstimatedTime)
		if _, ok := known[t.GoalID]; !ok {
			report.UnknownGoals++
		}
	}
	report.OverBudget = float64(report.TotalMinutes) > budget.Minutes
	return report
}

// addMinutes saturates at math.MaxInt so an absurd estimate still reads as over budget.
func addMinutes(total, m int) int {
	if m > 0 && total > math.MaxInt-m {
		return math.MaxInt
	}
	return total + m
}
