package task

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	generationFailedError = "タスクの生成に失敗しました"
	generationErrorError  = "タスクの生成中にエラーが発生しました。"
)

type Handler struct {
	service   TaskService
	generator GeneratorService
}

func NewHandler(service TaskService, generator GeneratorService) *Handler {
	return &Handler{service: service, generator: generator}
}

func (h *Handler) writeError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrTaskNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrInvalidEstimatedTime),
		errors.Is(err, ErrGoalNotFound),
		errors.Is(err, util.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// CreateTask godoc
// @Summary  Create a task
// @Tags     tasks
// @Accept   json
// @Produce  json
// @Param    body  body      CreateTaskDTO  true  "Task"
// @Success  201   {object}  Task
// @Router   /tasks [post]
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.CreateTask(r.Context(), dto)
	if err != nil {
		h.writeError(w, log, err, "create task")
		return
	}
	config.JSON(w, http.StatusCreated, t)
}

// ListTasks godoc
// @Summary  List tasks
// @Tags     tasks
// @Produce  json
// @Param    date  query  string  false  "Only tasks on this date (YYYY-MM-DD)"
// @Success  200  {array}  Task
// @Router   /tasks [get]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	tasks, err := h.service.ListTasks(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, log, err, "list tasks")
		return
	}
	config.JSON(w, http.StatusOK, tasks)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	t, err := h.service.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, log, err, "get task")
		return
	}
	config.JSON(w, http.StatusOK, t)
}

// UpdateTask godoc
// @Summary  Update a task or toggle its completion
// @Tags     tasks
// @Accept   json
// @Produce  json
// @Param    id    path      string         true  "Task ID"
// @Param    body  body      UpdateTaskDTO  true  "Fields to change"
// @Success  200   {object}  Task
// @Router   /tasks/{id} [put]
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.UpdateTask(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.writeError(w, log, err, "update task")
		return
	}
	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, log, err, "delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveBatch godoc
// @Summary  Persist a generated batch of tasks for one date
// @Tags     tasks
// @Accept   json
// @Produce  json
// @Param    body  body     SaveBatchDTO  true  "Generated tasks"
// @Success  201   {array}  Task
// @Router   /tasks/batch [post]
func (h *Handler) SaveBatch(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SaveBatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tasks, err := h.service.SaveBatch(r.Context(), dto)
	if err != nil {
		h.writeError(w, log, err, "save task batch")
		return
	}
	config.JSON(w, http.StatusCreated, tasks)
}

// GenerateTasks godoc
// @Summary  Generate one day's tasks from goals and the time budget
// @Tags     tasks
// @Accept   json
// @Produce  json
// @Param    body  body      GenerateTasksRequest  true  "Date, goals and settings"
// @Success  200   {object}  GenerateTasksResponse
// @Failure  400   {string}  string
// @Failure  500   {object}  ErrorResponse
// @Router   /api/generate-tasks [post]
func (h *Handler) GenerateTasks(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		var genErr *GenerationError
		switch {
		case isValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.As(err, &genErr):
			config.JSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:   generationFailedError,
				Message: genErr.Raw,
			})
		default:
			log.WithError(err).Error("Failed to generate tasks")
			config.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: generationErrorError})
		}
		return
	}
	config.JSON(w, http.StatusOK, resp)
}
