package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/saulo-duarte/coach-lambda/internal/config"
)

const deepSeekBaseURL = "https://api.deepseek.com/v1"

// openAIProvider serves OpenAI and any OpenAI-compatible endpoint (DeepSeek).
type openAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model, baseURL string, timeout time.Duration) Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &openAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *openAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	log := config.WithContext(ctx)
	if err := validate(req); err != nil {
		return "", err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
	})
	if err != nil {
		log.WithError(err).Error("Chat completion failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	log.Debugf("[AI] Chat completion raw response:\n%s", content)
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}
