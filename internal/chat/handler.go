package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/coach-lambda/internal/config"
)

const apologyMessage = "申し訳ございません。エラーが発生しました。"

type Handler struct {
	service ChatService
}

func NewHandler(service ChatService) *Handler {
	return &Handler{service: service}
}

// Chat godoc
// @Summary      Talk to the goal coach
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      ChatRequest  true  "Conversation so far"
// @Success      200   {object}  ChatResponse
// @Failure      400   {string}  string
// @Failure      500   {object}  ErrorResponse
// @Router       /api/chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid chat payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Reply(r.Context(), req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoMessages), errors.Is(err, ErrInvalidRole):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			config.JSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:   "Failed to process chat",
				Message: apologyMessage,
			})
		}
		return
	}

	config.JSON(w, http.StatusOK, resp)
}
