package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. Adjust CORS for your frontend hosts.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000", "https://*.run.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Post("/session", a.handleCreateSession)

		api.Group(func(pr chi.Router) {
			pr.Use(a.sessionMiddleware)

			pr.Get("/geocode", a.handleGeocode)
			pr.Put("/location", a.handleSetLocation)

			pr.Route("/zones", func(zr chi.Router) {
				zr.Get("/", a.handleListZones)
				zr.Post("/", a.handleCreateZone)
				zr.Get("/{id}", a.handleGetZone)
				zr.Put("/{id}/geometry", a.handleUpdateGeometry)
				zr.Put("/{id}/panels", a.handleSetPanelCount)
				zr.Post("/{id}/edit", a.handleBeginEdit)
				zr.Delete("/{id}", a.handleDeleteZone)
			})

			pr.Put("/selection", a.handleSelection)
			pr.Post("/edit/commit", a.handleCommitEdit)
			pr.Post("/edit/cancel", a.handleCancelEdit)
			pr.Put("/drawmode", a.handleDrawMode)

			pr.Get("/summary", a.handleSummary)
			pr.Get("/report", a.handleReport)
		})
	})

	return r
}
