package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/daily", h.Daily)
	r.Get("/weekly", h.Weekly)
	r.Get("/monthly", h.Monthly)

	return r
}
