package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/coach-lambda/internal/ai"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/saulo-duarte/coach-lambda/internal/extract"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoMessages  = errors.New("messages are required")
	ErrInvalidRole = errors.New("message role must be user or assistant")
)

type ChatService interface {
	Reply(ctx context.Context, messages []ai.Message) (*ChatResponse, error)
}

type chatService struct {
	provider  ai.Provider
	extractor extract.StructuredTextExtractor
}

func NewService(provider ai.Provider, extractor extract.StructuredTextExtractor) ChatService {
	return &chatService{provider: provider, extractor: extractor}
}

func (s *chatService) Reply(ctx context.Context, messages []ai.Message) (*ChatResponse, error) {
	log := config.WithContext(ctx)

	if len(messages) == 0 {
		return nil, ErrNoMessages
	}
	for _, m := range messages {
		if m.Role != ai.RoleUser && m.Role != ai.RoleAssistant {
			return nil, ErrInvalidRole
		}
	}

	text, err := s.provider.Generate(ctx, ai.Request{
		System:   ai.GoalCoachSystemPrompt,
		Messages: messages,
	})
	if err != nil {
		log.WithError(err).Error("Coach reply failed")
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	payload := s.extractor.Extract(ctx, text, extract.KeyGoals)
	resp := &ChatResponse{Message: payload.Message}
	if payload.Found() {
		resp.Goals = extract.NormalizeGoalSuggestions(payload.Records)
	}

	log.WithFields(logrus.Fields{
		"turns":    len(messages),
		"outcome":  payload.Outcome,
		"proposed": len(resp.Goals),
	}).Info("Coach replied")
	return resp, nil
}
