// filepath: internal/api/handlers/genre_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"soundvault/internal/logging"
	"soundvault/internal/models"
	"soundvault/internal/store"
)

// GetGenres returns all genres.
//
//	@Summary		List genres
//	@Tags			genres
//	@Produce		json
//	@Success		200	{array}		models.Genre
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/genres [get]
func (h *Handlers) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Store.GetGenres()
	if err != nil {
		logging.Log.WithError(err).Error("Failed to fetch genres")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch genres")
		return
	}
	respondWithJSON(w, http.StatusOK, genres)
}

// GetGenre returns a single genre by its id.
//
//	@Summary		Get a genre
//	@Tags			genres
//	@Produce		json
//	@Param			id	path		int	true	"Genre ID"
//	@Success		200	{object}	models.Genre
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/genres/{id} [get]
func (h *Handlers) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid genre ID")
		return
	}

	genre, err := h.Store.GetGenre(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Genre not found")
			return
		}
		logging.Log.WithError(err).WithField("genre_id", id).Error("Failed to fetch genre")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch genre")
		return
	}
	respondWithJSON(w, http.StatusOK, genre)
}

// CreateGenre adds a new genre category.
//
//	@Summary		Create a genre
//	@Tags			genres
//	@Accept			json
//	@Produce		json
//	@Param			genre	body		models.InsertGenre	true	"Genre to create"
//	@Success		201	{object}	models.Genre
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		BasicAuth
//	@Router			/api/genres [post]
func (h *Handlers) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var insert models.InsertGenre
	if err := json.NewDecoder(r.Body).Decode(&insert); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := insert.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	genre, err := h.Store.CreateGenre(insert)
	if err != nil {
		logging.Log.WithError(err).Error("Failed to create genre")
		respondWithError(w, http.StatusInternalServerError, "Failed to create genre")
		return
	}
	respondWithJSON(w, http.StatusCreated, genre)
}
