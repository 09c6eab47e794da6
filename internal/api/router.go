// filepath: internal/api/router.go
// Package api wires the HTTP surface of the catalog: public read routes,
// the token endpoints, and the admin-only mutation routes.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"soundvault/internal/api/handlers"
	"soundvault/internal/auth"
	"soundvault/internal/logging"
)

// SetupRouter configures all API routes. Reads are public; every mutation
// goes through Authenticate + RequireAdmin.
func SetupRouter(h *handlers.Handlers, mw *auth.Middleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)

	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Auth
	r.HandleFunc("/api/token", h.GetToken).Methods(http.MethodPost)
	r.HandleFunc("/api/token/refresh", h.RefreshToken).Methods(http.MethodPost)

	// Public catalog reads. The specific track routes are registered before
	// the {id} route so "featured" is not parsed as an id.
	r.HandleFunc("/api/tracks", h.GetTracks).Methods(http.MethodGet)
	r.HandleFunc("/api/tracks/featured", h.GetFeaturedTracks).Methods(http.MethodGet)
	r.HandleFunc("/api/tracks/filter/genre/{genre}", h.GetTracksByGenre).Methods(http.MethodGet)
	r.HandleFunc("/api/tracks/filter/mood/{mood}", h.GetTracksByMood).Methods(http.MethodGet)
	r.HandleFunc("/api/tracks/stream/{fileName}", h.StreamTrack).Methods(http.MethodGet)
	r.HandleFunc("/api/tracks/{id}", h.GetTrack).Methods(http.MethodGet)

	r.HandleFunc("/api/genres", h.GetGenres).Methods(http.MethodGet)
	r.HandleFunc("/api/genres/{id}", h.GetGenre).Methods(http.MethodGet)
	r.HandleFunc("/api/moods", h.GetMoods).Methods(http.MethodGet)
	r.HandleFunc("/api/moods/{id}", h.GetMood).Methods(http.MethodGet)

	// Admin-only mutations
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(mw.Authenticate, mw.RequireAdmin)
	admin.HandleFunc("/tracks", h.CreateTrack).Methods(http.MethodPost)
	admin.HandleFunc("/tracks/{id}", h.UpdateTrack).Methods(http.MethodPut)
	admin.HandleFunc("/tracks/{id}", h.DeleteTrack).Methods(http.MethodDelete)
	admin.HandleFunc("/genres", h.CreateGenre).Methods(http.MethodPost)
	admin.HandleFunc("/moods", h.CreateMood).Methods(http.MethodPost)
	admin.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)

	return r
}

// requestLogger logs every request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.Log.WithFields(map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Debug("Request received")
		next.ServeHTTP(w, r)
	})
}
