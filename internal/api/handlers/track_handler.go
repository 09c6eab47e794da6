// filepath: internal/api/handlers/track_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"soundvault/internal/logging"
	"soundvault/internal/models"
	"soundvault/internal/store"
)

// GetTracks returns all tracks in the catalog.
//
//	@Summary		List tracks
//	@Description	Returns every track in the catalog, ordered by id.
//	@Tags			tracks
//	@Produce		json
//	@Success		200	{array}		models.Track
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/tracks [get]
func (h *Handlers) GetTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Store.GetTracks()
	if err != nil {
		logging.Log.WithError(err).Error("Failed to fetch tracks")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch tracks")
		return
	}
	respondWithJSON(w, http.StatusOK, tracks)
}

// GetFeaturedTracks returns only the tracks flagged as featured.
//
//	@Summary		List featured tracks
//	@Tags			tracks
//	@Produce		json
//	@Success		200	{array}		models.Track
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/tracks/featured [get]
func (h *Handlers) GetFeaturedTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Store.GetFeaturedTracks()
	if err != nil {
		logging.Log.WithError(err).Error("Failed to fetch featured tracks")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch featured tracks")
		return
	}
	respondWithJSON(w, http.StatusOK, tracks)
}

// GetTrack returns a single track by its id.
//
//	@Summary		Get a track
//	@Tags			tracks
//	@Produce		json
//	@Param			id	path		int	true	"Track ID"
//	@Success		200	{object}	models.Track
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/tracks/{id} [get]
func (h *Handlers) GetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := trackID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	track, err := h.Store.GetTrack(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Track not found")
			return
		}
		logging.Log.WithError(err).WithField("track_id", id).Error("Failed to fetch track")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch track")
		return
	}
	respondWithJSON(w, http.StatusOK, track)
}

// GetTracksByGenre returns the tracks whose genre matches the given name.
// Matching is exact and case sensitive.
//
//	@Summary		List tracks by genre
//	@Tags			tracks
//	@Produce		json
//	@Param			genre	path		string	true	"Genre name"
//	@Success		200		{array}		models.Track
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/tracks/filter/genre/{genre} [get]
func (h *Handlers) GetTracksByGenre(w http.ResponseWriter, r *http.Request) {
	genre := mux.Vars(r)["genre"]
	tracks, err := h.Store.GetTracksByGenre(genre)
	if err != nil {
		logging.Log.WithError(err).WithField("genre", genre).Error("Failed to fetch tracks by genre")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch tracks by genre")
		return
	}
	respondWithJSON(w, http.StatusOK, tracks)
}

// GetTracksByMood returns the tracks whose mood matches the given name.
// Matching is exact and case sensitive.
//
//	@Summary		List tracks by mood
//	@Tags			tracks
//	@Produce		json
//	@Param			mood	path		string	true	"Mood name"
//	@Success		200		{array}		models.Track
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/tracks/filter/mood/{mood} [get]
func (h *Handlers) GetTracksByMood(w http.ResponseWriter, r *http.Request) {
	mood := mux.Vars(r)["mood"]
	tracks, err := h.Store.GetTracksByMood(mood)
	if err != nil {
		logging.Log.WithError(err).WithField("mood", mood).Error("Failed to fetch tracks by mood")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch tracks by mood")
		return
	}
	respondWithJSON(w, http.StatusOK, tracks)
}

// CreateTrack ingests a new track from a multipart upload. The audio file
// is stored on disk first, then the catalog record is created from the
// remaining form fields and the generated file name.
//
//	@Summary		Upload a track
//	@Tags			tracks
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			audioFile	formData	file	true	"MP3 audio file"
//	@Param			title		formData	string	true	"Track title"
//	@Param			genre		formData	string	true	"Genre name"
//	@Param			mood		formData	string	true	"Mood name"
//	@Param			duration	formData	string	true	"Duration as minutes:seconds"
//	@Param			bpm			formData	int		false	"Beats per minute"
//	@Param			key			formData	string	false	"Musical key"
//	@Param			featured	formData	bool	false	"Feature this track"
//	@Success		201	{object}	models.Track
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		BasicAuth
//	@Router			/api/tracks [post]
func (h *Handlers) CreateTrack(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSizeBytes)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSizeBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("audioFile")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Audio file is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".mp3") {
		respondWithError(w, http.StatusBadRequest, "Only MP3 files are allowed")
		return
	}

	fileName, size, err := h.Assets.Save(file, header.Filename)
	if err != nil {
		logging.Log.WithError(err).Error("Failed to save audio file")
		respondWithError(w, http.StatusInternalServerError, "Failed to save audio file")
		return
	}

	insert := models.InsertTrack{
		Title:    r.FormValue("title"),
		FileName: fileName,
		Genre:    r.FormValue("genre"),
		Mood:     r.FormValue("mood"),
		Duration: r.FormValue("duration"),
		Featured: r.FormValue("featured") == "true",
	}
	if v := r.FormValue("bpm"); v != "" {
		b, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.discardUpload(fileName)
			respondWithError(w, http.StatusBadRequest, "Invalid bpm")
			return
		}
		insert.BPM = &b
	}
	if v := r.FormValue("key"); v != "" {
		insert.Key = &v
	}

	if err := insert.Validate(); err != nil {
		h.discardUpload(fileName)
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	track, err := h.Store.CreateTrack(insert)
	if err != nil {
		h.discardUpload(fileName)
		logging.Log.WithError(err).Error("Failed to create track")
		respondWithError(w, http.StatusInternalServerError, "Failed to create track")
		return
	}

	logging.Log.WithFields(map[string]interface{}{
		"track_id": track.ID,
		"file":     track.FileName,
		"bytes":    size,
	}).Info("Track created")
	respondWithJSON(w, http.StatusCreated, track)
}

// UpdateTrack applies a partial update to an existing track. Only the
// fields present in the JSON body are changed.
//
//	@Summary		Update a track
//	@Tags			tracks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Track ID"
//	@Param			track	body		models.TrackUpdate	true	"Fields to update"
//	@Success		200	{object}	models.Track
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BasicAuth
//	@Router			/api/tracks/{id} [put]
func (h *Handlers) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	id, err := trackID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	var update models.TrackUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	track, err := h.Store.UpdateTrack(id, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Track not found")
			return
		}
		logging.Log.WithError(err).WithField("track_id", id).Error("Failed to update track")
		respondWithError(w, http.StatusInternalServerError, "Failed to update track")
		return
	}
	respondWithJSON(w, http.StatusOK, track)
}

// DeleteTrack removes a track record and then its audio file. The record
// is deleted first; a failure removing the file leaves the catalog
// consistent and only orphans the file on disk.
//
//	@Summary		Delete a track
//	@Tags			tracks
//	@Produce		json
//	@Param			id	path		int	true	"Track ID"
//	@Success		200	{object}	MessageResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BasicAuth
//	@Router			/api/tracks/{id} [delete]
func (h *Handlers) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	id, err := trackID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	track, err := h.Store.GetTrack(id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logging.Log.WithError(err).WithField("track_id", id).Error("Failed to fetch track")
		respondWithError(w, http.StatusInternalServerError, "Failed to delete track")
		return
	}

	deleted, err := h.Store.DeleteTrack(id)
	if err != nil {
		logging.Log.WithError(err).WithField("track_id", id).Error("Failed to delete track")
		respondWithError(w, http.StatusInternalServerError, "Failed to delete track")
		return
	}
	if !deleted {
		respondWithError(w, http.StatusNotFound, "Track not found")
		return
	}

	if track != nil {
		if err := h.Assets.Delete(track.FileName); err != nil {
			logging.Log.WithError(err).WithField("file", track.FileName).Warn("Failed to remove audio file")
		}
	}

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Track deleted"})
}

// StreamTrack serves a stored audio asset by its generated file name, the
// name recorded in a track's fileName field.
//
//	@Summary		Stream an audio asset
//	@Tags			tracks
//	@Produce		audio/mpeg
//	@Param			fileName	path	string	true	"Stored audio file name"
//	@Success		200
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/tracks/stream/{fileName} [get]
func (h *Handlers) StreamTrack(w http.ResponseWriter, r *http.Request) {
	fileName := mux.Vars(r)["fileName"]

	path, err := h.Assets.Resolve(fileName)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Audio file not found")
		return
	}
	if _, err := os.Stat(path); err != nil {
		respondWithError(w, http.StatusNotFound, "Audio file not found")
		return
	}
	http.ServeFile(w, r, path)
}

func (h *Handlers) discardUpload(fileName string) {
	if err := h.Assets.Delete(fileName); err != nil {
		logging.Log.WithError(err).WithField("file", fileName).Warn("Failed to discard upload")
	}
}

func trackID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
