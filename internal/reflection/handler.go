package reflection

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/coach-lambda/internal/config"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service ReflectionService
}

func NewHandler(service ReflectionService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrReflectionNotFound):
		http.Error(w, "reflection not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrInvalidScore),
		errors.Is(err, util.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// CreateReflection godoc
// @Summary  Record a reflection
// @Tags     reflections
// @Accept   json
// @Produce  json
// @Param    body  body      CreateReflectionDTO  true  "Reflection"
// @Success  201   {object}  Reflection
// @Router   /reflections [post]
func (h *Handler) CreateReflection(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateReflectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ref, err := h.service.CreateReflection(r.Context(), dto)
	if err != nil {
		h.writeError(w, log, err, "create reflection")
		return
	}
	config.JSON(w, http.StatusCreated, ref)
}

// ListReflections godoc
// @Summary  List reflections
// @Tags     reflections
// @Produce  json
// @Param    type  query    string  false  "daily, weekly or monthly"
// @Success  200   {array}  Reflection
// @Router   /reflections [get]
func (h *Handler) ListReflections(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	refs, err := h.service.ListReflections(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		h.writeError(w, log, err, "list reflections")
		return
	}
	config.JSON(w, http.StatusOK, refs)
}

func (h *Handler) UpdateReflection(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateReflectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ref, err := h.service.UpdateReflection(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.writeError(w, log, err, "update reflection")
		return
	}
	config.JSON(w, http.StatusOK, ref)
}

func (h *Handler) DeleteReflection(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.DeleteReflection(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, log, err, "delete reflection")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
