package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"lightcurve-export/internal/api/handler"
)

// NewRouter wires the export-job routes and the swagger UI.
func NewRouter(h *handler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/exports", h.CreateExport)
		r.Get("/exports", h.ListExports)
		r.Get("/exports/{id}", h.GetExport)
		r.Get("/exports/{id}/errors", h.GetExportErrors)
		r.Get("/exports/{id}/warnings", h.GetExportWarnings)
		r.Get("/exports/{id}/result", h.GetExportResult)
		r.Get("/exports/{id}/download", h.DownloadExport)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
