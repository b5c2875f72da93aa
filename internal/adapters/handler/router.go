package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *HTTP) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/ai-generate", h.Generate)
		r.Post("/recognition", h.Recognize)
		r.Post("/remove-bg", h.RemoveBackground)
		r.Post("/compress", h.Compress)
		r.Get("/health", Health)
	})

	return r
}
