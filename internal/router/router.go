// Package router sets up all HTTP routes and middleware chains for the
// noticeboard server. Routes are organized into a public content group
// and an admin management group with its own middleware stack.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"noticeboard/internal/handlers"
	"noticeboard/internal/middleware"
)

// Admin endpoints share one rate limit bucket per client IP.
const (
	adminRateLimit  = 60
	adminRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(admin *handlers.Admin, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Public content — read-only, cacheable.
		r.Get("/popups/active", public.ActivePopup)
		r.Get("/circulars", public.Circulars)

		// Management API. Authentication is handled by the gateway in
		// front of this service; rate limiting stays local.
		r.Route("/admin", func(r chi.Router) {
			rl := middleware.NewRateLimiter(adminRateLimit, adminRateWindow)
			r.Use(rl.Middleware)

			r.Route("/popups", func(r chi.Router) {
				r.Get("/", admin.PopupsList)
				r.Post("/", admin.PopupsCreate)
				r.Get("/{id}", admin.PopupsGet)
				r.Put("/{id}", admin.PopupsUpdate)
				r.Post("/{id}/status", admin.PopupsSetStatus)

				// Pending activation conflicts.
				r.Post("/conflicts/{token}/confirm", admin.ConflictConfirm)
				r.Post("/conflicts/{token}/cancel", admin.ConflictCancel)
			})

			r.Route("/circulars", func(r chi.Router) {
				r.Get("/", admin.CircularsList)
				r.Post("/", admin.CircularsCreate)
				r.Get("/{id}", admin.CircularsGet)
				r.Put("/{id}", admin.CircularsUpdate)
				r.Post("/{id}/status", admin.CircularsSetStatus)
				r.Delete("/{id}", admin.CircularsDelete)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
