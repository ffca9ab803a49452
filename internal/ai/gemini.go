package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/saulo-duarte/coach-lambda/internal/config"
	"google.golang.org/genai"
)

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model, baseURL string, timeout time.Duration) (Provider, error) {
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	log := config.WithContext(ctx)
	if err := validate(req); err != nil {
		return "", err
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	var gc *genai.GenerateContentConfig
	if req.System != "" {
		gc = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
		}
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, gc)
	if err != nil {
		log.WithError(err).Error("Gemini generate content failed")
		return "", fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("[AI] Gemini raw response:\n%s", raw)
	if raw == "" {
		return "", ErrEmptyResponse
	}
	return raw, nil
}
