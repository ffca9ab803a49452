package chat

import (
	"github.com/saulo-duarte/coach-lambda/internal/ai"
	"github.com/saulo-duarte/coach-lambda/internal/extract"
)

type ChatRequest struct {
	Messages []ai.Message `json:"messages"`
}

type ChatResponse struct {
	Message string                   `json:"message"`
	Goals   []extract.GoalSuggestion `json:"goals,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
