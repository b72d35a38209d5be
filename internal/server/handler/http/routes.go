package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/riefhanj02/florasight/internal/auth"
	"github.com/riefhanj02/florasight/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the admin API.
//
// Routes:
//
//	POST /api/login                 → sessionHandler.Login
//	POST /api/logout                → sessionHandler.Logout (protected)
//	GET  /api/me                    → sessionHandler.CurrentUser (protected)
//	GET  /api/sightings             → sightingsHandler.List (protected)
//	GET  /api/sightings/geo         → sightingsHandler.Geo (protected)
//	POST /api/sightings/reclassify  → sightingsHandler.Reclassify (protected)
//
// Middleware: JSON content-type enforcement on POSTs, request logging,
// and session enforcement on the protected group.
func NewRouter(
	sessionHandler *SessionHandler,
	sightingsHandler *SightingsHandler,
	gate *auth.Gate,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoint
		r.With(chiMiddleware.AllowContentType("application/json")).
			Post("/login", sessionHandler.Login)

		// Protected group: requires a live admin session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(gate))

			r.Post("/logout", sessionHandler.Logout)
			r.Get("/me", sessionHandler.CurrentUser)
			r.Get("/sightings", sightingsHandler.List)
			r.Get("/sightings/geo", sightingsHandler.Geo)
			r.With(chiMiddleware.AllowContentType("application/json")).
				Post("/sightings/reclassify", sightingsHandler.Reclassify)
		})
	})

	return r
}
