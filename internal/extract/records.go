package extract

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	DefaultEstimatedMinutes = 60
	MaxEstimatedMinutes     = 24 * 60
)

type GoalSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type GeneratedTask struct {
	GoalID        string `json:"goalId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EstimatedTime int    `json:"estimatedTime"`
}

// NormalizeGoalSuggestions maps every record to a suggestion. A record that
// is not an object, or lacks fields, gets defaults instead of being dropped.
func NormalizeGoalSuggestions(records []json.RawMessage) []GoalSuggestion {
	out := make([]GoalSuggestion, 0, len(records))
	for _, rec := range records {
		fields := decodeObject(rec)
		description := text(fields["description"])
		if description == "" {
			description = text(fields["why"])
		}
		out = append(out, GoalSuggestion{
			Title:       text(fields["title"]),
			Description: description,
			Priority:    NormalizePriority(text(fields["priority"])),
		})
	}
	return out
}

func NormalizeGeneratedTasks(records []json.RawMessage) []GeneratedTask {
	out := make([]GeneratedTask, 0, len(records))
	for _, rec := range records {
		fields := decodeObject(rec)
		out = append(out, GeneratedTask{
			GoalID:        text(fields["goalId"]),
			Title:         text(fields["title"]),
			Description:   text(fields["description"]),
			EstimatedTime: minutes(fields["estimatedTime"]),
		})
	}
	return out
}

// NormalizePriority folds unknown or empty values to medium.
func NormalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

func decodeObject(rec json.RawMessage) map[string]interface{} {
	var fields map[string]interface{}
	if err := json.Unmarshal(rec, &fields); err != nil || fields == nil {
		return map[string]interface{}{}
	}
	return fields
}

func text(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

func minutes(v interface{}) int {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return DefaultEstimatedMinutes
		}
		f = parsed
	default:
		return DefaultEstimatedMinutes
	}
	if f > MaxEstimatedMinutes {
		return MaxEstimatedMinutes
	}
	m := int(math.Round(f))
	if m <= 0 {
		return DefaultEstimatedMinutes
	}
	return m
}
