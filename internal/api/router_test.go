// filepath: internal/api/router_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundvault/internal/api/handlers"
	"soundvault/internal/auth"
	"soundvault/internal/config"
	"soundvault/internal/models"
	"soundvault/internal/storage"
	"soundvault/internal/store"
)

func newTestRouter(t *testing.T) (*mux.Router, *store.MemoryStore) {
	t.Helper()
	s, err := store.NewMemoryStore("admin123")
	require.NoError(t, err)
	assets, err := storage.NewAssetStore(t.TempDir())
	require.NoError(t, err)
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		MaxUploadSizeBytes: 10 << 20,
		JWT:                config.JWTConfig{AccessDurationMin: 15, RefreshDurationHours: 24},
	}
	tokens := auth.NewTokenService(cfg, s)
	h := handlers.NewHandlers(s, assets, tokens, cfg)
	return SetupRouter(h, auth.NewMiddleware(s, tokens)), s
}

func TestPublicReadsRequireNoAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{
		"/health",
		"/api/tracks",
		"/api/tracks/featured",
		"/api/tracks/filter/genre/Ambient",
		"/api/tracks/filter/mood/Peaceful",
		"/api/genres",
		"/api/genres/1",
		"/api/moods",
		"/api/moods/1",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, "GET %s", path)
	}
}

func TestFeaturedRouteIsNotParsedAsID(t *testing.T) {
	router, s := newTestRouter(t)

	_, err := s.CreateTrack(models.InsertTrack{
		Title: "Hit", FileName: "hit.mp3", Genre: "Ambient", Mood: "Peaceful",
		Duration: "1:00", Featured: true,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/tracks/featured", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var tracks []models.Track
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tracks))
	require.Len(t, tracks, 1)
	assert.Equal(t, "Hit", tracks[0].Title)
}

func TestMutationsRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/tracks"},
		{http.MethodPut, "/api/tracks/1"},
		{http.MethodDelete, "/api/tracks/1"},
		{http.MethodPost, "/api/genres"},
		{http.MethodPost, "/api/moods"},
		{http.MethodPost, "/api/logout"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.path)
	}
}

func TestMutationsRejectNonAdmin(t *testing.T) {
	router, s := newTestRouter(t)

	_, err := s.CreateUser(models.InsertUser{Username: "bob", Password: "builder"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/genres",
		strings.NewReader(`{"name":"Jazz"}`))
	req.SetBasicAuth("bob", "builder")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminCanCreateGenreOverRouter(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/genres",
		strings.NewReader(`{"name":"Jazz"}`))
	req.SetBasicAuth("admin", "admin123")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var genre models.Genre
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &genre))
	assert.Equal(t, "Jazz", genre.Name)
}

func TestBearerTokenWorksOverRouter(t *testing.T) {
	router, _ := newTestRouter(t)

	body := strings.NewReader(`{"username":"admin","password":"admin123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/token", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var pair struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pair))

	req = httptest.NewRequest(http.MethodPost, "/api/moods",
		strings.NewReader(`{"name":"Hopeful"}`))
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)
}
