package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/saulo-duarte/coach-lambda/internal/auth"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste-longo-o-suficiente")

	var out bytes.Buffer
	require.NoError(t, run([]string{"-role", "admin", "-ttl", "1h"}, &out))

	claims, err := auth.ValidateJWT(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultUserID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestRunErrors(t *testing.T) {
	t.Run("InvalidUser", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "segredo-de-teste-longo-o-suficiente")
		err := run([]string{"-user", "nao-e-uuid"}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		err := run(nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, auth.ErrTokensDisabled)
	})
}
