package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/saulo-duarte/coach-lambda/internal/config"
)

const (
	anthropicMaxTokens      = 4096
	anthropicDefaultTimeout = 60 * time.Second
)

type anthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider builds a Messages API client. Extra options are applied
// after the defaults, so callers can override the base URL, HTTP client or retries.
func NewAnthropicProvider(apiKey, model string, opts ...option.RequestOption) Provider {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: anthropicDefaultTimeout}),
	}
	return &anthropicProvider{
		client: anthropic.NewClient(append(base, opts...)...),
		model:  model,
	}
}

func (p *anthropicProvider) Generate(ctx context.Context, req Request) (string, error) {
	log := config.WithContext(ctx)
	if err := validate(req); err != nil {
		return "", err
	}

	messages := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: anthropicMaxTokens,
		Messages:  messages,
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		log.WithError(err).Error("Anthropic request failed")
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := b.String()
	log.Debugf("[AI] Anthropic raw response (stop=%s):\n%s", msg.StopReason, text)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
