package config

import (
	"context"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

func Init() {
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	level, err := logrus.ParseLevel(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
}

// WithContext returns a logger carrying the request id set by chi's RequestID middleware.
func WithContext(ctx context.Context) logrus.FieldLogger {
	entry := logrus.NewEntry(Logger)
	if ctx == nil {
		return entry
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if userID, ok := ctx.Value(userIDLogKey).(string); ok && userID != "" {
		entry = entry.WithField("user_id", userID)
	}
	return entry
}

type logKey string

const userIDLogKey logKey = "log_user_id"

// ContextWithUserID tags every log line written through WithContext with the scoped user.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDLogKey, userID)
}
