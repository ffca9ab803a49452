package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/saulo-duarte/coach-lambda/internal/config"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrEmptyResponse       = errors.New("empty response from model")
	ErrNoMessages          = errors.New("at least one message is required")
	ErrUnknownProvider     = errors.New("unknown AI provider")
	ErrProviderUnavailable = errors.New("AI provider is not configured")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	System   string
	Messages []Message
}

// Provider is the text-generation service: role-tagged messages plus an
// optional system instruction in, one completion out.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

var defaultModels = map[string]string{
	"anthropic": "claude-3-5-sonnet-20241022",
	"openai":    "gpt-4o",
	"google":    "gemini-1.5-pro",
	"gemini":    "gemini-1.5-pro",
	"deepseek":  "deepseek-chat",
}

func DefaultModel(provider string) string {
	return defaultModels[provider]
}

func NewProvider(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel(cfg.Provider)
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch cfg.Provider {
	case "anthropic", "":
		var opts []option.RequestOption
		if timeout > 0 {
			opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: timeout}))
		}
		return NewAnthropicProvider(cfg.AnthropicAPIKey, model, opts...), nil
	case "openai":
		return NewOpenAIProvider(cfg.OpenAIAPIKey, model, "", timeout), nil
	case "deepseek":
		return NewOpenAIProvider(cfg.DeepSeekAPIKey, model, deepSeekBaseURL, timeout), nil
	case "google", "gemini":
		return NewGeminiProvider(ctx, cfg.GoogleAPIKey, model, "", timeout)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

// Unavailable is used when provider construction fails at startup so the
// rest of the API keeps serving.
type Unavailable struct {
	Err error
}

func (u Unavailable) Generate(ctx context.Context, req Request) (string, error) {
	if u.Err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, u.Err)
	}
	return "", ErrProviderUnavailable
}

func validate(req Request) error {
	if len(req.Messages) == 0 {
		return ErrNoMessages
	}
	return nil
}
