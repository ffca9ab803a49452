package allocator

import util "github.com/saulo-duarte/coach-lambda/internal/utils"

// Plan is everything needed to ask the generator for one day's tasks.
type Plan struct {
	Budget Budget
	Goals  []Goal
	Shares []Share
	Prompt string
}

// Prepare validates the input and builds the plan. It returns ErrNoActiveGoals
// when every goal is archived, in which case the generator must not be called.
func Prepare(date util.LocalDate, settings Settings, goals []Goal) (*Plan, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateWeights(goals); err != nil {
		return nil, err
	}

	active := ActiveGoals(goals)
	if len(active) == 0 {
		return nil, ErrNoActiveGoals
	}

	budget := BudgetFor(date, settings)
	return &Plan{
		Budget: budget,
		Goals:  active,
		Shares: Shares(budget, active),
		Prompt: BuildPrompt(budget, active),
	}, nil
}
