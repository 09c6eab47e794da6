// filepath: internal/api/handlers/genre_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundvault/internal/models"
)

func TestGetGenresSeeded(t *testing.T) {
	h, _, _ := newLiveHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/genres", nil)
	rr := httptest.NewRecorder()
	h.GetGenres(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var genres []models.Genre
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &genres))
	require.Len(t, genres, 5)
	assert.Equal(t, "Cinematic", genres[0].Name)
}

func TestCreateGenre(t *testing.T) {
	h, _, _ := newLiveHandlers(t)

	body, _ := json.Marshal(models.InsertGenre{Name: "Lo-Fi"})
	req := httptest.NewRequest(http.MethodPost, "/api/genres", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateGenre(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var genre models.Genre
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &genre))
	assert.Equal(t, "Lo-Fi", genre.Name)
	assert.Equal(t, int64(6), genre.ID)
}

func TestCreateGenreMissingName(t *testing.T) {
	h, _, _ := newLiveHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/genres", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	h.CreateGenre(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetGenreNotFound(t *testing.T) {
	h, _, _ := newLiveHandlers(t)

	req := withVars(httptest.NewRequest(http.MethodGet, "/api/genres/42", nil),
		map[string]string{"id": "42"})
	rr := httptest.NewRecorder()
	h.GetGenre(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetMoodsSeeded(t *testing.T) {
	h, _, _ := newLiveHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	rr := httptest.NewRecorder()
	h.GetMoods(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var moods []models.Mood
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &moods))
	require.Len(t, moods, 8)
	assert.Equal(t, "Uplifting", moods[0].Name)
}

func TestCreateMood(t *testing.T) {
	h, _, _ := newLiveHandlers(t)

	body, _ := json.Marshal(models.InsertMood{Name: "Nostalgic"})
	req := httptest.NewRequest(http.MethodPost, "/api/moods", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateMood(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var mood models.Mood
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mood))
	assert.Equal(t, "Nostalgic", mood.Name)
	assert.Equal(t, int64(9), mood.ID)
}

func TestCreateMoodMissingName(t *testing.T) {
	h, _, _ := newLiveHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/moods", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	h.CreateMood(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
