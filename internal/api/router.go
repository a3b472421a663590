package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/login", s.handleLogin)

		// Device callbacks. The enrollment callback carries no credential
		// (the controller cannot hold per-session secrets); the event
		// callback is gated by the shared secret.
		r.Post("/identities/callback", s.handleEnrollmentCallback)
		r.With(s.callbackSecretMiddleware).Post("/events/callback", s.handleEventCallback)

		// WebSocket live feed. Browsers cannot set an Authorization header
		// on the upgrade request, so the single-use ticket from
		// POST /auth/ws-ticket is the credential here, not the JWT.
		wsPath := s.wsCfg.Path
		if wsPath == "" {
			wsPath = "/ws"
		}
		r.Get(wsPath, s.handleWebSocket)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			// WS ticket requires authentication - admin must be logged in
			r.Post("/auth/ws-ticket", s.handleWSTicket)

			r.Route("/identities", func(r chi.Router) {
				r.Get("/", s.handleListIdentities)
				r.Get("/search", s.handleSearchIdentities)
				r.Post("/", s.handleStartEnrollment)
				r.Delete("/{biometricID}", s.handleDeleteIdentity)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", s.handleListEvents)
				r.Get("/frequency", s.handleEventFrequency)
			})
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
