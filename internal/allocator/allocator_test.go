package allocator_test

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/saulo-duarte/coach-lambda/internal/allocator"
	"github.com/saulo-duarte/coach-lambda/internal/extract"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weight(n int) *int { return &n }

func TestBudgetFor(t *testing.T) {
	// 2025-03-02 is a Sunday; walk a whole week for several budgets.
	sunday := util.NewLocalDate(2025, time.March, 2)
	budgets := []allocator.Settings{
		{WeekdayHoursPerDay: 0, WeekendHoursPerDay: 0},
		{WeekdayHoursPerDay: 2, WeekendHoursPerDay: 5},
		{WeekdayHoursPerDay: 1.5, WeekendHoursPerDay: 0.25},
		{WeekdayHoursPerDay: 8, WeekendHoursPerDay: 3},
	}

	for _, s := range budgets {
		for i := 0; i < 7; i++ {
			date := sunday.AddDays(i)
			wd := date.Weekday()
			weekend := wd == time.Saturday || wd == time.Sunday

			want := s.WeekdayHoursPerDay
			if weekend {
				want = s.WeekendHoursPerDay
			}

			b := allocator.BudgetFor(date, s)
			assert.Equal(t, weekend, b.IsWeekend, date.String())
			assert.Equal(t, want, b.Hours, date.String())
			assert.InDelta(t, want*60, b.Minutes, 1e-9, date.String())
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, allocator.Settings{}.Validate())
	assert.ErrorIs(t, allocator.Settings{WeekdayHoursPerDay: -1}.Validate(), allocator.ErrNegativeHours)
	assert.ErrorIs(t, allocator.Settings{WeekendHoursPerDay: -0.5}.Validate(), allocator.ErrNegativeHours)
}

func TestActiveGoals(t *testing.T) {
	goals := []allocator.Goal{
		{ID: "a"},
		{ID: "b", IsArchived: true},
		{ID: "c"},
	}
	active := allocator.ActiveGoals(goals)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "c", active[1].ID)

	assert.Empty(t, allocator.ActiveGoals([]allocator.Goal{{ID: "x", IsArchived: true}}))
	assert.Empty(t, allocator.ActiveGoals(nil))
}

func TestValidateWeights(t *testing.T) {
	for w := allocator.MinWeight; w <= allocator.MaxWeight; w++ {
		assert.NoError(t, allocator.ValidateWeights([]allocator.Goal{{TimeWeight: weight(w)}}))
	}
	assert.NoError(t, allocator.ValidateWeights([]allocator.Goal{{}}))
	assert.ErrorIs(t, allocator.ValidateWeights([]allocator.Goal{{TimeWeight: weight(0)}}), allocator.ErrInvalidWeight)
	assert.ErrorIs(t, allocator.ValidateWeights([]allocator.Goal{{TimeWeight: weight(6)}}), allocator.ErrInvalidWeight)
}

func TestShares(t *testing.T) {
	budget := allocator.Budget{Minutes: 120}
	goals := []allocator.Goal{
		{ID: "a", TimeWeight: weight(5)},
		{ID: "b", TimeWeight: weight(1)},
		{ID: "c"},
	}

	shares := allocator.Shares(budget, goals)
	require.Len(t, shares, 3)
	assert.Equal(t, allocator.Share{GoalID: "a", Weight: 5, Minutes: 66}, shares[0])
	assert.Equal(t, allocator.Share{GoalID: "b", Weight: 1, Minutes: 13}, shares[1])
	assert.Equal(t, allocator.Share{GoalID: "c", Weight: 3, Minutes: 40}, shares[2])

	sum := 0
	for _, s := range shares {
		sum += s.Minutes
	}
	assert.LessOrEqual(t, sum, 120)
}

func TestBuildPrompt(t *testing.T) {
	date := util.NewLocalDate(2025, time.March, 8)
	budget := allocator.BudgetFor(date, allocator.Settings{WeekdayHoursPerDay: 2, WeekendHoursPerDay: 4.5})
	goals := []allocator.Goal{
		{ID: "g1", Title: "TOEIC 800点", Description: "転職のため", Priority: "high", TimeWeight: weight(4)},
		{ID: "g2", Title: "読書", Priority: "low"},
	}

	prompt := allocator.BuildPrompt(budget, goals)

	assert.Contains(t, prompt, "2025/3/8（休日）")
	assert.Contains(t, prompt, "4.5時間（270分）")
	assert.Contains(t, prompt, "【ID: g1】TOEIC 800点")
	assert.Contains(t, prompt, "説明: 転職のため")
	assert.Contains(t, prompt, "優先度: high")
	assert.Contains(t, prompt, "時間配分の重み: 4/5")
	assert.Contains(t, prompt, "【ID: g2】読書")
	assert.Contains(t, prompt, "説明: なし")
	assert.Contains(t, prompt, "時間配分の重み: 3/5")
	assert.Contains(t, prompt, "利用可能な時間（270分）を超えない")
	assert.Less(t, strings.Index(prompt, "g1"), strings.Index(prompt, "g2"), "goal order is preserved")
}

func TestBuildPromptWeekday(t *testing.T) {
	date := util.NewLocalDate(2025, time.March, 10)
	budget := allocator.BudgetFor(date, allocator.Settings{WeekdayHoursPerDay: 1, WeekendHoursPerDay: 4})

	prompt := allocator.BuildPrompt(budget, []allocator.Goal{{ID: "g1", Title: "t", Priority: "medium"}})
	assert.Contains(t, prompt, "（平日）")
	assert.Contains(t, prompt, "1時間（60分）")
}

func TestCheck(t *testing.T) {
	budget := allocator.Budget{Minutes: 90}
	goals := []allocator.Goal{{ID: "g1"}, {ID: "g2"}}

	within := allocator.Check(budget, goals, []extract.GeneratedTask{
		{GoalID: "g1", EstimatedTime: 30},
		{GoalID: "g2", EstimatedTime: 60},
	})
	assert.Equal(t, allocator.Report{BudgetMinutes: 90, TotalMinutes: 90}, within)

	over := allocator.Check(budget, goals, []extract.GeneratedTask{
		{GoalID: "g1", EstimatedTime: 60},
		{GoalID: "", EstimatedTime: 60},
	})
	assert.True(t, over.OverBudget)
	assert.Equal(t, 120, over.TotalMinutes)
	assert.Equal(t, 1, over.UnknownGoals)
}

func TestTaskGeneratorSystemPromptExample(t *testing.T) {
	payload := extract.NewFencedJSONExtractor().Extract(context.Background(), allocator.TaskGeneratorSystemPrompt, extract.KeyTasks)
	require.True(t, payload.Found())

	tasks := extract.NormalizeGeneratedTasks(payload.Records)
	require.Len(t, tasks, 1)
	assert.Equal(t, "<目標ID>", tasks[0].GoalID)
	assert.Equal(t, 30, tasks[0].EstimatedTime)
}

func TestCheckHugeEstimates(t *testing.T) {
	report := allocator.Check(allocator.Budget{Minutes: 60}, nil, []extract.GeneratedTask{
		{EstimatedTime: math.MaxInt - 10},
		{EstimatedTime: math.MaxInt - 10},
	})
	assert.Equal(t, math.MaxInt, report.TotalMinutes)
	assert.True(t, report.OverBudget)
}

func TestPrepare(t *testing.T) {
	saturday := util.NewLocalDate(2025, time.March, 8)
	settings := allocator.Settings{WeekdayHoursPerDay: 1, WeekendHoursPerDay: 3}

	t.Run("builds plan from active goals", func(t *testing.T) {
		goals := []allocator.Goal{
			{ID: "a", Title: "A", TimeWeight: weight(2)},
			{ID: "old", Title: "Old", IsArchived: true},
			{ID: "b", Title: "B"},
		}
		plan, err := allocator.Prepare(saturday, settings, goals)
		require.NoError(t, err)
		assert.True(t, plan.Budget.IsWeekend)
		assert.Equal(t, 180.0, plan.Budget.Minutes)
		require.Len(t, plan.Goals, 2)
		assert.Equal(t, "a", plan.Goals[0].ID)
		assert.Equal(t, "b", plan.Goals[1].ID)
		assert.Equal(t, []allocator.Share{{GoalID: "a", Weight: 2, Minutes: 72}, {GoalID: "b", Weight: 3, Minutes: 108}}, plan.Shares)
		assert.NotContains(t, plan.Prompt, "Old")
	})

	t.Run("no active goals", func(t *testing.T) {
		_, err := allocator.Prepare(saturday, settings, []allocator.Goal{{ID: "x", IsArchived: true}})
		assert.ErrorIs(t, err, allocator.ErrNoActiveGoals)

		_, err = allocator.Prepare(saturday, settings, nil)
		assert.ErrorIs(t, err, allocator.ErrNoActiveGoals)
	})

	t.Run("validation comes first", func(t *testing.T) {
		_, err := allocator.Prepare(saturday, allocator.Settings{WeekendHoursPerDay: -1}, nil)
		assert.ErrorIs(t, err, allocator.ErrNegativeHours)

		_, err = allocator.Prepare(saturday, settings, []allocator.Goal{{ID: "a", TimeWeight: weight(6)}})
		assert.ErrorIs(t, err, allocator.ErrInvalidWeight)
	})
}
