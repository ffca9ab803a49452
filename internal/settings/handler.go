package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/coach-lambda/internal/config"
)

type Handler struct {
	service SettingsService
}

func NewHandler(service SettingsService) *Handler {
	return &Handler{service: service}
}

// GetSettings godoc
// @Summary  Read the daily time budget
// @Tags     settings
// @Produce  json
// @Success  200  {object}  UserSettings
// @Router   /settings [get]
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	s, err := h.service.GetSettings(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to get settings")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, s)
}

// UpdateSettings godoc
// @Summary  Save the daily time budget
// @Tags     settings
// @Accept   json
// @Produce  json
// @Param    body  body      UpdateSettingsDTO  true  "Hours per day"
// @Success  200   {object}  UserSettings
// @Router   /settings [put]
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateSettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.service.UpdateSettings(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidHours):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrUnauthorized):
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		default:
			log.WithError(err).Error("Failed to update settings")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}
	config.JSON(w, http.StatusOK, s)
}
