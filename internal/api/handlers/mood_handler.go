// filepath: internal/api/handlers/mood_handler.go
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

// GetMoods returns all moods.
//
//	@Summary		List moods
//	@Tags			moods
//	@Produce		json
//	@Success		200	{array}		models.Mood
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/moods [get]
func (h *Handlers) GetMoods(w http.ResponseWriter, r *http.Request) {
	moods, err := h.Store.GetMoods()
	if err != nil {
		logging.Log.WithError(err).Error("Failed to fetch moods")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch moods")
		return
	}
	respondWithJSON(w, http.StatusOK, moods)
}

// GetMood returns a single mood by its id.
//
//	@Summary		Get a mood
//	@Tags			moods
//	@Produce		json
//	@Param			id	path		int	true	"Mood ID"
//	@Success		200	{object}	models.Mood
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/moods/{id} [get]
func (h *Handlers) GetMood(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid mood ID")
		return
	}

	mood, err := h.Store.GetMood(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Mood not found")
			return
		}
		logging.Log.WithError(err).WithField("mood_id", id).Error("Failed to fetch mood")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch mood")
		return
	}
	respondWithJSON(w, http.StatusOK, mood)
}

// CreateMood adds a new mood category.
//
//	@Summary		Create a mood
//	@Tags			moods
//	@Accept			json
//	@Produce		json
//	@Param			mood	body		models.InsertMood	true	"Mood to create"
//	@Success		201	{object}	models.Mood
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		BasicAuth
//	@Router			/api/moods [post]
func (h *Handlers) CreateMood(w http.ResponseWriter, r *http.Request) {
	var insert models.InsertMood
	if err := json.NewDecoder(r.Body).Decode(&insert); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := insert.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	mood, err := h.Store.CreateMood(insert)
	if err != nil {
		logging.Log.WithError(err).Error("Failed to create mood")
		respondWithError(w, http.StatusInternalServerError, "Failed to create mood")
		return
	}
	respondWithJSON(w, http.StatusCreated, mood)
}
