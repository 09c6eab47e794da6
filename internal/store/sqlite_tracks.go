// filepath: internal/store/sqlite_tracks.go
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"soundvault/internal/logging"
	"soundvault/internal/models"
)

var trackColumns = []string{"id", "title", "file_name", "genre", "mood", "duration", "bpm", "key", "featured", "created_at"}

// GetTracks returns all tracks ordered by id.
func (s *SQLiteStore) GetTracks() ([]models.Track, error) {
	return s.queryTracks(s.trackSelect())
}

func (s *SQLiteStore) GetTrack(id int64) (*models.Track, error) {
	rows, err := s.trackSelect().Where("id = ?", id).Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return scanTrack(rows)
}

func (s *SQLiteStore) GetFeaturedTracks() ([]models.Track, error) {
	return s.queryTracks(s.trackSelect().Where("featured = ?", true))
}

// GetTracksByGenre matches the genre column exactly; sqlite TEXT comparison
// is case-sensitive by default, which is the contract here.
func (s *SQLiteStore) GetTracksByGenre(genre string) ([]models.Track, error) {
	return s.queryTracks(s.trackSelect().Where("genre = ?", genre))
}

// GetTracksByMood matches the mood column exactly (case-sensitive).
func (s *SQLiteStore) GetTracksByMood(mood string) ([]models.Track, error) {
	return s.queryTracks(s.trackSelect().Where("mood = ?", mood))
}

// CreateTrack inserts a new track. The caller must already have stored the
// audio asset referenced by FileName.
func (s *SQLiteStore) CreateTrack(in models.InsertTrack) (*models.Track, error) {
	createdAt := time.Now()
	res, err := s.Builder.
		Insert("tracks").
		Columns("title", "file_name", "genre", "mood", "duration", "bpm", "key", "featured", "created_at").
		Values(in.Title, in.FileName, in.Genre, in.Mood, in.Duration, in.BPM, in.Key, in.Featured, createdAt).
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to create track: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	logging.Log.Debugf("CreateTrack: track %q created with id %d", in.Title, id)
	return &models.Track{
		ID:        id,
		Title:     in.Title,
		FileName:  in.FileName,
		Genre:     in.Genre,
		Mood:      in.Mood,
		Duration:  in.Duration,
		BPM:       in.BPM,
		Key:       in.Key,
		Featured:  in.Featured,
		CreatedAt: createdAt,
	}, nil
}

// UpdateTrack merges the partial update over the existing record and writes
// the mutable columns back. Id and created_at are never touched.
func (s *SQLiteStore) UpdateTrack(id int64, update models.TrackUpdate) (*models.Track, error) {
	current, err := s.GetTrack(id)
	if err != nil {
		return nil, err
	}
	updated := update.Apply(*current)

	_, err = s.Builder.
		Update("tracks").
		Set("title", updated.Title).
		Set("file_name", updated.FileName).
		Set("genre", updated.Genre).
		Set("mood", updated.Mood).
		Set("duration", updated.Duration).
		Set("bpm", updated.BPM).
		Set("key", updated.Key).
		Set("featured", updated.Featured).
		Where("id = ?", id).
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update track %d: %w", id, err)
	}
	return &updated, nil
}

// DeleteTrack removes the record only; the audio asset on disk is the route
// layer's responsibility. Returns false for unknown ids.
func (s *SQLiteStore) DeleteTrack(id int64) (bool, error) {
	res, err := s.Builder.Delete("tracks").Where("id = ?", id).Exec()
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) trackSelect() squirrel.SelectBuilder {
	return s.Builder.Select(trackColumns...).From("tracks").OrderBy("id ASC")
}

func (s *SQLiteStore) queryTracks(q squirrel.SelectBuilder) ([]models.Track, error) {
	rows, err := q.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := make([]models.Track, 0)
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, *t)
	}
	return tracks, rows.Err()
}

func scanTrack(rows *sql.Rows) (*models.Track, error) {
	var (
		t   models.Track
		bpm sql.NullInt64
		key sql.NullString
	)
	if err := rows.Scan(&t.ID, &t.Title, &t.FileName, &t.Genre, &t.Mood, &t.Duration, &bpm, &key, &t.Featured, &t.CreatedAt); err != nil {
		return nil, err
	}
	if bpm.Valid {
		t.BPM = &bpm.Int64
	}
	if key.Valid {
		t.Key = &key.String
	}
	return &t, nil
}
