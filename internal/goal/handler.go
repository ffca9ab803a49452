package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service GoalService
}

func NewHandler(service GoalService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrGoalNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrInvalidPriority),
		errors.Is(err, ErrInvalidTimeWeight):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// CreateGoal godoc
// @Summary  Create a goal
// @Tags     goals
// @Accept   json
// @Produce  json
// @Param    body  body      CreateGoalDTO  true  "Goal"
// @Success  201   {object}  Goal
// @Router   /goals [post]
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.CreateGoal(r.Context(), dto)
	if err != nil {
		h.writeError(w, log, err, "create goal")
		return
	}
	config.JSON(w, http.StatusCreated, g)
}

// ListGoals godoc
// @Summary  List goals
// @Tags     goals
// @Produce  json
// @Param    archived  query  bool  false  "Include archived goals"
// @Success  200  {array}  Goal
// @Router   /goals [get]
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	includeArchived := r.URL.Query().Get("archived") == "true"
	goals, err := h.service.ListGoals(r.Context(), includeArchived)
	if err != nil {
		h.writeError(w, log, err, "list goals")
		return
	}
	config.JSON(w, http.StatusOK, goals)
}

func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	g, err := h.service.GetGoal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, log, err, "get goal")
		return
	}
	config.JSON(w, http.StatusOK, g)
}

// UpdateGoal godoc
// @Summary  Update a goal, including its time weight
// @Tags     goals
// @Accept   json
// @Produce  json
// @Param    id    path      string         true  "Goal ID"
// @Param    body  body      UpdateGoalDTO  true  "Fields to change"
// @Success  200   {object}  Goal
// @Router   /goals/{id} [put]
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.UpdateGoal(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.writeError(w, log, err, "update goal")
		return
	}
	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) ArchiveGoal(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	g, err := h.service.ArchiveGoal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, log, err, "archive goal")
		return
	}
	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.DeleteGoal(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, log, err, "delete goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdoptGoals godoc
// @Summary  Adopt goal suggestions from the coach
// @Tags     goals
// @Accept   json
// @Produce  json
// @Param    body  body      AdoptGoalsRequest  true  "Suggestions to keep"
// @Success  200   {object}  AdoptGoalsResponse
// @Router   /api/goals [post]
func (h *Handler) AdoptGoals(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req AdoptGoalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Goals == nil {
		http.Error(w, "goals are required", http.StatusBadRequest)
		return
	}

	count, err := h.service.AdoptSuggestions(r.Context(), req.Goals)
	if err != nil {
		h.writeError(w, log, err, "adopt goals")
		return
	}
	config.JSON(w, http.StatusOK, AdoptGoalsResponse{Success: true, Count: count})
}
