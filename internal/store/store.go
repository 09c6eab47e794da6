// filepath: internal/store/store.go
// Package store implements the catalog store: the sole owner of the
// user/track/genre/mood collections and the only component permitted to
// mutate them. Two backends exist, an in-memory map store and a sqlite
// store, both satisfying the Store interface.
package store

import (
	"errors"
	"time"

	"soundvault/internal/models"
)

// ErrNotFound is returned by lookups and mutations that reference an unknown
// identifier. Handlers map it to 404.
var ErrNotFound = errors.New("record not found")

// Store is the catalog store contract. Lookups return ErrNotFound for
// unknown ids rather than a nil record; DeleteTrack instead reports success
// as a bool, returning (false, nil) for unknown ids.
type Store interface {
	Close() error

	// User
	GetUser(id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(in models.InsertUser) (*models.User, error)

	// Track
	GetTracks() ([]models.Track, error)
	GetTrack(id int64) (*models.Track, error)
	GetFeaturedTracks() ([]models.Track, error)
	GetTracksByGenre(genre string) ([]models.Track, error)
	GetTracksByMood(mood string) ([]models.Track, error)
	CreateTrack(in models.InsertTrack) (*models.Track, error)
	UpdateTrack(id int64, update models.TrackUpdate) (*models.Track, error)
	DeleteTrack(id int64) (bool, error)

	// Genre
	GetGenres() ([]models.Genre, error)
	GetGenre(id int64) (*models.Genre, error)
	CreateGenre(in models.InsertGenre) (*models.Genre, error)

	// Mood
	GetMoods() ([]models.Mood, error)
	GetMood(id int64) (*models.Mood, error)
	CreateMood(in models.InsertMood) (*models.Mood, error)

	// Refresh tokens (stored as hashes, see internal/auth)
	StoreRefreshToken(userID int64, tokenHash string, expiry time.Time) error
	ValidateRefreshToken(tokenHash string) (int64, error)
	DeleteRefreshToken(tokenHash string) error
}
