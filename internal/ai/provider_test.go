package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/saulo-duarte/coach-lambda/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		provider string
		wantErr  error
	}{
		{"default is anthropic", "", nil},
		{"anthropic", "anthropic", nil},
		{"openai", "openai", nil},
		{"deepseek", "deepseek", nil},
		{"unknown", "mistral", ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(ctx, config.AIConfig{Provider: tt.provider, TimeoutSeconds: 5})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, "claude-3-5-sonnet-20241022", DefaultModel("anthropic"))
	assert.Equal(t, "gpt-4o", DefaultModel("openai"))
	assert.Equal(t, "gemini-1.5-pro", DefaultModel("google"))
	assert.Equal(t, "gemini-1.5-pro", DefaultModel("gemini"))
	assert.Equal(t, "deepseek-chat", DefaultModel("deepseek"))
	assert.Empty(t, DefaultModel("other"))
}

func TestGoalCoachSystemPromptExample(t *testing.T) {
	payload := extract.NewFencedJSONExtractor().Extract(context.Background(), GoalCoachSystemPrompt, extract.KeyGoals)
	require.True(t, payload.Found())

	goals := extract.NormalizeGoalSuggestions(payload.Records)
	require.Len(t, goals, 1)
	assert.Equal(t, "<目標名>", goals[0].Title)
	assert.Equal(t, extract.PriorityMedium, goals[0].Priority)
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = Unavailable{Err: assert.AnError}.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Contains(t, err.Error(), assert.AnError.Error())
}

func TestAnthropicProvider_Generate(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		System    []struct {
			Text string `json:"text"`
		} `json:"system"`
		Messages []struct {
			Role    string `json:"role"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",` +
			`"content":[{"type":"text","text":"こんにちは"},{"type":"text","text":"！"}],` +
			`"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":2}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("secret", "claude-test", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	out, err := p.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "こんにちは！", out)
	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, anthropicMaxTokens, got.MaxTokens)
	require.Len(t, got.System, 1)
	assert.Equal(t, "sys", got.System[0].Text)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, RoleUser, got.Messages[0].Role)
	assert.Equal(t, RoleAssistant, got.Messages[1].Role)
	require.Len(t, got.Messages[1].Content, 1)
	assert.Equal(t, "hello", got.Messages[1].Content[0].Text)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	t.Run("no messages", func(t *testing.T) {
		p := NewAnthropicProvider("k", "m")
		_, err := p.Generate(context.Background(), Request{System: "sys"})
		assert.ErrorIs(t, err, ErrNoMessages)
	})

	t.Run("non 2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"overloaded"}}`))
		}))
		defer srv.Close()

		p := NewAnthropicProvider("k", "m", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
		require.Error(t, err)

		var apiErr *anthropic.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	})

	t.Run("empty text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"msg_2","type":"message","role":"assistant","model":"m","content":[],"stop_reason":"end_turn"}`))
		}))
		defer srv.Close()

		p := NewAnthropicProvider("k", "m", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var got struct {
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"deepseek-chat","choices":[{"index":0,"message":{"role":"assistant","content":"了解です"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("secret", "deepseek-chat", srv.URL+"/v1/", time.Second)
	out, err := p.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "了解です", out)
	assert.Equal(t, "deepseek-chat", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "sys", got.Messages[0].Content)
	assert.Equal(t, RoleUser, got.Messages[1].Role)
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("secret", "gpt-4o", srv.URL+"/v1", time.Second)
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-test")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"がんばりましょう"}]}}]}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "secret", "gemini-test", srv.URL+"/", time.Second)
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "がんばりましょう", out)
}
