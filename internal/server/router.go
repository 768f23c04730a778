package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires the handlers. At most maxJobs downloads run at once.
func NewRouter(h *Handler, maxJobs int, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		Logger(logger),
	)

	r.Get("/", h.Index)
	r.Get("/healthz", h.Health)
	r.With(JobLimit(maxJobs)).Post("/download", h.Download)

	return r
}
