package goal

import "github.com/saulo-duarte/coach-lambda/internal/extract"

type CreateGoalDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	TimeWeight  *int     `json:"timeWeight"`
}

// UpdateGoalDTO only touches fields that are present in the payload.
// ClearTimeWeight resets the goal to unweighted.
type UpdateGoalDTO struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Priority        *Priority `json:"priority"`
	IsArchived      *bool     `json:"isArchived"`
	TimeWeight      *int      `json:"timeWeight"`
	ClearTimeWeight bool      `json:"clearTimeWeight"`
}

type AdoptGoalsRequest struct {
	Goals []extract.GoalSuggestion `json:"goals"`
}

type AdoptGoalsResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}
