package task

import (
	"github.com/saulo-duarte/coach-lambda/internal/allocator"
	"github.com/saulo-duarte/coach-lambda/internal/extract"
)

type CreateTaskDTO struct {
	GoalID        *string `json:"goalId"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	EstimatedTime *int    `json:"estimatedTime"`
	Date          string  `json:"date"`
}

type UpdateTaskDTO struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	EstimatedTime *int    `json:"estimatedTime"`
	Completed     *bool   `json:"completed"`
	Date          *string `json:"date"`
}

type SaveBatchDTO struct {
	Date  string                  `json:"date"`
	Tasks []extract.GeneratedTask `json:"tasks"`
}

// GenerateTasksRequest carries the caller's goals and settings. Either may be
// omitted, in which case the stored ones are used.
type GenerateTasksRequest struct {
	Date     string              `json:"date"`
	Goals    []allocator.Goal    `json:"goals"`
	Settings *allocator.Settings `json:"settings"`
}

type GenerateTasksResponse struct {
	Tasks   []extract.GeneratedTask `json:"tasks"`
	Message string                  `json:"message"`
	*allocator.Report
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
