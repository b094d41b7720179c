// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	transactionHandler *handler.TransactionHandler,
	categoryHandler *handler.CategoryHandler,
	statsHandler *handler.StatsHandler,
	settingsHandler *handler.SettingsHandler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Transaction ledger routes
	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", transactionHandler.Create)
		r.Get("/", transactionHandler.List)
		r.Delete("/{transactionID}", transactionHandler.Delete)
	})

	// Category management routes
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", categoryHandler.Create)
		r.Get("/", categoryHandler.List)
		r.Delete("/{name}", categoryHandler.Delete)
	})

	// Reporting routes
	r.Route("/stats", func(r chi.Router) {
		r.Get("/balance", statsHandler.Balance)
		r.Get("/categories", statsHandler.Categories)
	})
	r.Route("/history", func(r chi.Router) {
		r.Get("/periods", statsHandler.Periods)
		r.Get("/data", statsHandler.History)
	})

	// Settings routes
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", settingsHandler.Get)
		r.Put("/currency", settingsHandler.UpdateCurrency)
	})

	return r
}
