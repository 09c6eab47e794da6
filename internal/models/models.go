// filepath: internal/models/models.go
// Package models contains the core data structures for the catalog.
//
// Each entity comes in two shapes: the full persisted record, and an
// "insertable" shape holding only the fields a caller may supply at creation
// time. Server-assigned fields (id, createdAt) never appear in insertables.
package models

import "time"

// User represents an account in the system.
//
// The password is stored in cleartext. This mirrors the documented design of
// the catalog and is NOT production-safe; see the README.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Omit from JSON responses
	IsAdmin  bool   `json:"isAdmin"`
}

// Track represents a single licensable music track. Genre and Mood are
// denormalized free-form strings, not references into the genre/mood tables.
type Track struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	FileName string `json:"fileName"` // reference to the stored audio asset
	Genre    string `json:"genre"`
	Mood     string `json:"mood"`
	Duration string `json:"duration"` // formatted "minutes:seconds"

	BPM      *int64  `json:"bpm,omitempty"`
	Key      *string `json:"key,omitempty"` // musical key, e.g. "C minor"
	Featured bool    `json:"featured"`

	CreatedAt time.Time `json:"createdAt"` // set at creation, immutable
}

// Genre represents a browsable genre category.
type Genre struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// Mood represents a browsable mood category.
type Mood struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// InsertUser is the insertable shape of User. IsAdmin always defaults to
// false on creation; promoting a user is a store-internal seeding concern.
type InsertUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// InsertTrack is the insertable shape of Track.
type InsertTrack struct {
	Title    string  `json:"title"`
	FileName string  `json:"fileName"`
	Genre    string  `json:"genre"`
	Mood     string  `json:"mood"`
	Duration string  `json:"duration"`
	BPM      *int64  `json:"bpm,omitempty"`
	Key      *string `json:"key,omitempty"`
	Featured bool    `json:"featured"`
}

// TrackUpdate is the partial-update shape of Track. Nil fields are left
// unchanged; id and createdAt can never be updated.
type TrackUpdate struct {
	Title    *string `json:"title,omitempty"`
	FileName *string `json:"fileName,omitempty"`
	Genre    *string `json:"genre,omitempty"`
	Mood     *string `json:"mood,omitempty"`
	Duration *string `json:"duration,omitempty"`
	BPM      *int64  `json:"bpm,omitempty"`
	Key      *string `json:"key,omitempty"`
	Featured *bool   `json:"featured,omitempty"`
}

// InsertGenre is the insertable shape of Genre.
type InsertGenre struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// InsertMood is the insertable shape of Mood.
type InsertMood struct {
	Name string `json:"name"`
}

// Apply merges the non-nil fields of the update over an existing track and
// returns the result. The receiver track is not modified.
func (u TrackUpdate) Apply(t Track) Track {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.FileName != nil {
		t.FileName = *u.FileName
	}
	if u.Genre != nil {
		t.Genre = *u.Genre
	}
	if u.Mood != nil {
		t.Mood = *u.Mood
	}
	if u.Duration != nil {
		t.Duration = *u.Duration
	}
	if u.BPM != nil {
		t.BPM = u.BPM
	}
	if u.Key != nil {
		t.Key = u.Key
	}
	if u.Featured != nil {
		t.Featured = *u.Featured
	}
	return t
}
