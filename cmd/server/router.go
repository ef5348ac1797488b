package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fintrack/ledger-api/internal/api"
	apiMiddleware "github.com/fintrack/ledger-api/internal/api/middleware"
)

// setupRouter configures the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	userHandler := api.NewUserHandler(
		app.userService,
		app.entryService,
		app.jwtService,
		app.logger,
	)
	entryHandler := api.NewEntryHandler(app.entryService, app.userService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Post("/users/authenticate", userHandler.Authenticate)
		r.Post("/auth/refresh", userHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/{id}/balance", userHandler.GetBalance)

			r.Post("/entries", entryHandler.Create)
			r.Get("/entries", entryHandler.Search)
			r.Put("/entries/{id}", entryHandler.Update)
			r.Patch("/entries/{id}/status", entryHandler.UpdateStatus)
			r.Delete("/entries/{id}", entryHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
