package container

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Setenv("JWT_SECRET", "")
	cfg := &config.AppConfig{
		Port:           "0",
		DatabaseDriver: "sqlite",
		DatabaseDSN:    filepath.Join(t.TempDir(), "coach.db"),
		DefaultUserID:  config.DefaultUserID,
		AllowedOrigins: []string{"*"},
		CryptoKey:      "0123456789abcdef0123456789abcdef",
		AI:             config.AIConfig{Provider: "anthropic", TimeoutSeconds: 1},
	}

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)
	return c.Router()
}

func TestRouter_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = do(http.MethodGet, "/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":"`+config.DefaultUserID+`"`)

	rec = do(http.MethodPost, "/api/generate-tasks", `{"date":"2025-03-03"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var gen struct {
		Tasks   []json.RawMessage `json:"tasks"`
		Message string            `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gen))
	assert.Empty(t, gen.Tasks)
	assert.NotEmpty(t, gen.Message)

	rec = do(http.MethodPost, "/api/goals", `{"goals":[{"title":"英語","priority":"high"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"count":1}`, rec.Body.String())

	rec = do(http.MethodGet, "/goals", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "英語")

	rec = do(http.MethodPost, "/api/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodGet, "/stats/weekly?date=2025-03-03", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RejectsBadBearer(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/goals", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
