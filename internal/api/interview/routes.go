package interview

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/interview", func(r chi.Router) {
		r.Post("/", h.ConductTurn)
		r.Post("/report", h.ExportReport)
	})
}
