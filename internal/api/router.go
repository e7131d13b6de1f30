// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bankist-ledger/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(ledgerHandler *handler.LedgerHandler, logger *slog.Logger) http.Handler {
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

	r.Post("/sessions", ledgerHandler.Login)
	r.Get("/ledger/overall-balance", ledgerHandler.GetOverallBalance)

	// Routes acting on the logged-in account
	r.Group(func(r chi.Router) {
		r.Use(ledgerHandler.RequireSession)

		r.Delete("/sessions/current", ledgerHandler.Logout)
		r.Route("/me", func(r chi.Router) {
			r.Get("/", ledgerHandler.GetAccount)
			r.Get("/movements", ledgerHandler.GetMovements)
			r.Post("/sort", ledgerHandler.ToggleSort)
			r.Post("/transfers", ledgerHandler.Transfer)
			r.Post("/loans", ledgerHandler.RequestLoan)
			r.Post("/close", ledgerHandler.CloseAccount)
		})
	})

	logger.Debug("HTTP routes registered")
	return r
}
