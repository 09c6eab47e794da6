// filepath: internal/store/sqlite_test.go
package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundvault/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := NewSQLiteStore(path, "admin123")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteBootstrapAndSeed(t *testing.T) {
	s := newTestSQLiteStore(t)

	genres, err := s.GetGenres()
	require.NoError(t, err)
	assert.Len(t, genres, 5)

	moods, err := s.GetMoods()
	require.NoError(t, err)
	assert.Len(t, moods, 8)

	admin, err := s.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "admin123", admin.Password)
}

func TestSQLiteReopenDoesNotReseed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := NewSQLiteStore(path, "admin123")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path, "admin123")
	require.NoError(t, err)
	defer s.Close()

	genres, err := s.GetGenres()
	require.NoError(t, err)
	assert.Len(t, genres, 5, "seeding must run once per database lifetime")
}

func TestSQLiteTrackCRUD(t *testing.T) {
	s := newTestSQLiteStore(t)

	bpm := int64(96)
	key := "A minor"
	created, err := s.CreateTrack(models.InsertTrack{
		Title:    "Ashes",
		FileName: "ashes.mp3",
		Genre:    "Ambient",
		Mood:     "Melancholic",
		Duration: "4:10",
		BPM:      &bpm,
		Key:      &key,
		Featured: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := s.GetTrack(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ashes", got.Title)
	require.NotNil(t, got.BPM)
	assert.Equal(t, int64(96), *got.BPM)
	require.NotNil(t, got.Key)
	assert.Equal(t, "A minor", *got.Key)
	assert.True(t, got.Featured)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)

	title := "Ashes II"
	updated, err := s.UpdateTrack(created.ID, models.TrackUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Ashes II", updated.Title)
	assert.Equal(t, "Ambient", updated.Genre)

	deleted, err := s.DeleteTrack(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteTrack(created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = s.GetTrack(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteIDsNotReused(t *testing.T) {
	s := newTestSQLiteStore(t)

	first, err := s.CreateTrack(models.InsertTrack{
		Title: "One", FileName: "one.mp3", Genre: "Cinematic", Mood: "Dramatic", Duration: "2:00",
	})
	require.NoError(t, err)

	_, err = s.DeleteTrack(first.ID)
	require.NoError(t, err)

	second, err := s.CreateTrack(models.InsertTrack{
		Title: "Two", FileName: "two.mp3", Genre: "Cinematic", Mood: "Dramatic", Duration: "2:00",
	})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestSQLiteFilters(t *testing.T) {
	s := newTestSQLiteStore(t)

	for _, in := range []models.InsertTrack{
		{Title: "A", FileName: "a.mp3", Genre: "Ambient", Mood: "Peaceful", Duration: "1:00"},
		{Title: "B", FileName: "b.mp3", Genre: "Electronic", Mood: "Energetic", Duration: "1:00", Featured: true},
		{Title: "C", FileName: "c.mp3", Genre: "Ambient", Mood: "Energetic", Duration: "1:00"},
	} {
		_, err := s.CreateTrack(in)
		require.NoError(t, err)
	}

	byGenre, err := s.GetTracksByGenre("Ambient")
	require.NoError(t, err)
	assert.Len(t, byGenre, 2)

	miss, err := s.GetTracksByGenre("ambient")
	require.NoError(t, err)
	assert.Empty(t, miss, "genre matching is case sensitive")

	byMood, err := s.GetTracksByMood("Energetic")
	require.NoError(t, err)
	assert.Len(t, byMood, 2)

	featured, err := s.GetFeaturedTracks()
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "B", featured[0].Title)
}

func TestSQLiteUniqueConstraints(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.CreateUser(models.InsertUser{Username: "admin", Password: "whatever"})
	assert.Error(t, err, "usernames are unique in the sqlite backend")

	_, err = s.CreateGenre(models.InsertGenre{Name: "Ambient"})
	assert.Error(t, err, "genre names are unique in the sqlite backend")
}

func TestSQLiteUserCache(t *testing.T) {
	s := newTestSQLiteStore(t)

	first, err := s.GetUserByUsername("admin")
	require.NoError(t, err)

	// Second read should come from the cache and agree with the first.
	second, err := s.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	byID, err := s.GetUser(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Username, byID.Username)
}

func TestSQLiteRefreshTokens(t *testing.T) {
	s := newTestSQLiteStore(t)

	require.NoError(t, s.StoreRefreshToken(1, "hash-a", time.Now().Add(time.Hour)))

	userID, err := s.ValidateRefreshToken("hash-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)

	require.NoError(t, s.DeleteRefreshToken("hash-a"))
	_, err = s.ValidateRefreshToken("hash-a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.StoreRefreshToken(1, "hash-b", time.Now().Add(-time.Minute)))
	_, err = s.ValidateRefreshToken("hash-b")
	assert.ErrorIs(t, err, ErrNotFound, "expired tokens are invalid")
}
