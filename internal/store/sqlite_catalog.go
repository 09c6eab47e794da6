// filepath: internal/store/sqlite_catalog.go
package store

import (
	"database/sql"
	"fmt"

	"soundvault/internal/models"
)

// Genres and moods are create-only collections; no update or delete
// operations exist for them.

func (s *SQLiteStore) GetGenres() ([]models.Genre, error) {
	rows, err := s.Builder.
		Select("id", "name", "image_url").
		From("genres").
		OrderBy("id ASC").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]models.Genre, 0)
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}
		genres = append(genres, *g)
	}
	return genres, rows.Err()
}

func (s *SQLiteStore) GetGenre(id int64) (*models.Genre, error) {
	rows, err := s.Builder.
		Select("id", "name", "image_url").
		From("genres").
		Where("id = ?", id).
		Query()
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
	return scanGenre(rows)
}

func (s *SQLiteStore) CreateGenre(in models.InsertGenre) (*models.Genre, error) {
	res, err := s.Builder.
		Insert("genres").
		Columns("name", "image_url").
		Values(in.Name, in.ImageURL).
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Genre{ID: id, Name: in.Name, ImageURL: in.ImageURL}, nil
}

func (s *SQLiteStore) GetMoods() ([]models.Mood, error) {
	rows, err := s.Builder.
		Select("id", "name").
		From("moods").
		OrderBy("id ASC").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moods := make([]models.Mood, 0)
	for rows.Next() {
		var m models.Mood
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

func (s *SQLiteStore) GetMood(id int64) (*models.Mood, error) {
	var m models.Mood
	err := s.Builder.
		Select("id", "name").
		From("moods").
		Where("id = ?", id).
		QueryRow().
		Scan(&m.ID, &m.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *SQLiteStore) CreateMood(in models.InsertMood) (*models.Mood, error) {
	res, err := s.Builder.
		Insert("moods").
		Columns("name").
		Values(in.Name).
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to create mood: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Mood{ID: id, Name: in.Name}, nil
}

func scanGenre(rows *sql.Rows) (*models.Genre, error) {
	var (
		g        models.Genre
		imageURL sql.NullString
	)
	if err := rows.Scan(&g.ID, &g.Name, &imageURL); err != nil {
		return nil, err
	}
	if imageURL.Valid {
		g.ImageURL = &imageURL.String
	}
	return &g, nil
}
