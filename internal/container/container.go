package container

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/coach-lambda/internal/ai"
	"github.com/saulo-duarte/coach-lambda/internal/auth"
	"github.com/saulo-duarte/coach-lambda/internal/chat"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/saulo-duarte/coach-lambda/internal/extract"
	"github.com/saulo-duarte/coach-lambda/internal/goal"
	"github.com/saulo-duarte/coach-lambda/internal/reflection"
	"github.com/saulo-duarte/coach-lambda/internal/router"
	"github.com/saulo-duarte/coach-lambda/internal/settings"
	"github.com/saulo-duarte/coach-lambda/internal/stats"
	"github.com/saulo-duarte/coach-lambda/internal/task"
	"gorm.io/gorm"
)

type Container struct {
	Config              *config.AppConfig
	ChatContainer       *chat.ChatContainer
	GoalContainer       *goal.GoalContainer
	SettingsContainer   *settings.SettingsContainer
	TaskContainer       *task.TaskContainer
	ReflectionContainer *reflection.ReflectionContainer
	StatsContainer      *stats.StatsContainer
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&goal.Goal{},
		&settings.UserSettings{},
		&task.Task{},
		&reflection.Reflection{},
	)
}

func New(ctx context.Context, cfg *config.AppConfig) (*Container, error) {
	log := config.WithContext(ctx)

	auth.Init()
	if cfg.CryptoKey != "" {
		config.InitCrypto(cfg.CryptoKey)
	} else {
		log.Warn("CRYPTO_KEY not set, reflections are stored in plain text")
	}

	if err := config.Connect(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN); err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}
	if err := Migrate(config.DB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	provider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		log.WithError(err).WithField("provider", cfg.AI.Provider).Error("AI provider unavailable, generation endpoints will fail")
		provider = ai.Unavailable{Err: err}
	}
	extractor := extract.NewFencedJSONExtractor()

	goalContainer := goal.NewGoalContainer(config.DB)
	settingsContainer := settings.NewSettingsContainer(config.DB)
	taskContainer := task.NewTaskContainer(
		config.DB,
		goalContainer.Service,
		settingsContainer.Service,
		provider,
		extractor,
	)

	return &Container{
		Config:              cfg,
		ChatContainer:       chat.NewChatContainer(provider, extractor),
		GoalContainer:       goalContainer,
		SettingsContainer:   settingsContainer,
		TaskContainer:       taskContainer,
		ReflectionContainer: reflection.NewReflectionContainer(config.DB),
		StatsContainer:      stats.NewStatsContainer(taskContainer.Service, goalContainer.Service),
	}, nil
}

func (c *Container) Router() *chi.Mux {
	return router.New(router.RouterConfig{
		AllowedOrigins:    c.Config.AllowedOrigins,
		DefaultUserID:     c.Config.DefaultUserID,
		ChatHandler:       c.ChatContainer.Handler,
		GoalHandler:       c.GoalContainer.Handler,
		SettingsHandler:   c.SettingsContainer.Handler,
		TaskHandler:       c.TaskContainer.Handler,
		ReflectionHandler: c.ReflectionContainer.Handler,
		StatsHandler:      c.StatsContainer.Handler,
	})
}
