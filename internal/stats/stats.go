// Package stats derives completion statistics from a user's tasks.
package stats

import (
	"math"
	"time"

	util "github.com/saulo-duarte/coach-lambda/internal/utils"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// Entry is the slice of a task that statistics need.
type Entry struct {
	GoalID    string
	Date      util.LocalDate
	Minutes   int
	Completed bool
}

type GoalBreakdown struct {
	GoalID         string `json:"goalId"`
	GoalTitle      string `json:"goalTitle"`
	TaskCount      int    `json:"taskCount"`
	CompletedCount int    `json:"completedCount"`
	TotalTime      int    `json:"totalTime"`
}

type Summary struct {
	TotalTasks     int             `json:"totalTasks"`
	CompletedTasks int             `json:"completedTasks"`
	CompletionRate int             `json:"completionRate"`
	TotalTime      int             `json:"totalTime"`
	GoalBreakdown  []GoalBreakdown `json:"goalBreakdown"`
}

type DayStat struct {
	Date           util.LocalDate `json:"date"`
	TotalTasks     int            `json:"totalTasks"`
	CompletedTasks int            `json:"completedTasks"`
	CompletionRate int            `json:"completionRate"`
	TotalTime      int            `json:"totalTime"`
}

type PeriodStats struct {
	Period string         `json:"period"`
	From   util.LocalDate `json:"from"`
	To     util.LocalDate `json:"to"`
	Summary
	Days  []DayStat  `json:"days,omitempty"`
	Weeks []WeekStat `json:"weeks,omitempty"`
}

type WeekStat struct {
	WeekStart util.LocalDate `json:"weekStart"`
	WeekEnd   util.LocalDate `json:"weekEnd"`
	Summary
}

// Rate is the rounded completion percentage, 0 for an empty set.
func Rate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// Summarize totals the entries. TotalTime counts completed work only. Entries
// without a goal are counted in the totals but not in the breakdown, which
// keeps first-seen goal order.
func Summarize(entries []Entry, titles map[string]string) Summary {
	s := Summary{GoalBreakdown: []GoalBreakdown{}}
	index := make(map[string]int)

	for _, e := range entries {
		s.TotalTasks++
		if e.Completed {
			s.CompletedTasks++
			s.TotalTime += e.Minutes
		}

		if e.GoalID == "" {
			continue
		}
		i, ok := index[e.GoalID]
		if !ok {
			i = len(s.GoalBreakdown)
			index[e.GoalID] = i
			s.GoalBreakdown = append(s.GoalBreakdown, GoalBreakdown{
				GoalID:    e.GoalID,
				GoalTitle: titles[e.GoalID],
			})
		}
		b := &s.GoalBreakdown[i]
		b.TaskCount++
		if e.Completed {
			b.CompletedCount++
			b.TotalTime += e.Minutes
		}
	}

	s.CompletionRate = Rate(s.CompletedTasks, s.TotalTasks)
	return s
}

// Days returns one DayStat per calendar day in [from, to], empty days included.
func Days(entries []Entry, from, to util.LocalDate) []DayStat {
	byDay := make(map[string][]Entry)
	for _, e := range entries {
		byDay[e.Date.String()] = append(byDay[e.Date.String()], e)
	}

	var days []DayStat
	for d := from; !d.After(to.Time); d = d.AddDays(1) {
		s := Summarize(byDay[d.String()], nil)
		days = append(days, DayStat{
			Date:           d,
			TotalTasks:     s.TotalTasks,
			CompletedTasks: s.CompletedTasks,
			CompletionRate: s.CompletionRate,
			TotalTime:      s.TotalTime,
		})
	}
	return days
}

// Weeks rolls [from, to] up into Monday-to-Sunday weeks. The first and last
// week are clipped to the range.
func Weeks(entries []Entry, from, to util.LocalDate, titles map[string]string) []WeekStat {
	var weeks []WeekStat
	for start := from; !start.After(to.Time); {
		end := start.StartOfWeek().AddDays(6)
		if end.After(to.Time) {
			end = to
		}

		var inWeek []Entry
		for _, e := range entries {
			if !e.Date.Before(start.Time) && !e.Date.After(end.Time) {
				inWeek = append(inWeek, e)
			}
		}
		weeks = append(weeks, WeekStat{
			WeekStart: start,
			WeekEnd:   end,
			Summary:   Summarize(inWeek, titles),
		})
		start = end.AddDays(1)
	}
	return weeks
}

func DailyRange(date util.LocalDate) (util.LocalDate, util.LocalDate) {
	return date, date
}

// WeeklyRange is the Monday-to-Sunday week containing date.
func WeeklyRange(date util.LocalDate) (util.LocalDate, util.LocalDate) {
	start := date.StartOfWeek()
	return start, start.AddDays(6)
}

func MonthlyRange(year int, month time.Month) (util.LocalDate, util.LocalDate) {
	start := util.NewLocalDate(year, month, 1)
	end := util.LocalDate{Time: start.AddDate(0, 1, -1)}
	return start, end
}
