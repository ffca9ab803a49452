package reflection

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateReflection)
	r.Get("/", h.ListReflections)
	r.Put("/{id}", h.UpdateReflection)
	r.Delete("/{id}", h.DeleteReflection)

	return r
}
