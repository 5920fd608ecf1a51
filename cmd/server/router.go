package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spotly/meeting-api/internal/api"
	apiMiddleware "github.com/spotly/meeting-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	meetingHandler := api.NewMeetingHandler(app.meetingService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Every meeting endpoint acts on behalf of a user.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			meetingHandler.RegisterRoutes(r)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
