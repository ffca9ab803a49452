// Package testutil holds helpers shared by repository and service tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/coach-lambda/internal/auth"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLite opens a throwaway file-backed SQLite database and migrates models.
func NewSQLite(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := config.OpenDB(context.Background(), "sqlite", filepath.Join(t.TempDir(), "coach.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// UserContext returns a context scoped to a fresh user id.
func UserContext(t *testing.T) (context.Context, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	ctx := auth.WithClaims(context.Background(), &auth.Claims{UserID: userID.String(), Role: "owner"})
	return ctx, userID
}
