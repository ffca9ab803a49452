package task

import (
	"github.com/saulo-duarte/coach-lambda/internal/ai"
	"github.com/saulo-duarte/coach-lambda/internal/extract"
	"github.com/saulo-duarte/coach-lambda/internal/goal"
	"github.com/saulo-duarte/coach-lambda/internal/settings"
	"gorm.io/gorm"
)

type TaskContainer struct {
	Handler   *Handler
	Service   TaskService
	Generator GeneratorService
}

func NewTaskContainer(
	db *gorm.DB,
	goalService goal.GoalService,
	settingsService settings.SettingsService,
	provider ai.Provider,
	extractor extract.StructuredTextExtractor,
) *TaskContainer {
	repo := NewRepository(db)
	service := NewService(repo, goalService)
	generator := NewGeneratorService(provider, extractor, goalService, settingsService)
	handler := NewHandler(service, generator)

	return &TaskContainer{
		Handler:   handler,
		Service:   service,
		Generator: generator,
	}
}
