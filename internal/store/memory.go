// filepath: internal/store/memory.go
package store

import (
	"sort"
	"sync"
	"time"

	"soundvault/internal/models"
)

// MemoryStore is the map-backed catalog store. Identifiers come from
// per-entity counters that start at 1 and are never reused, so deletion
// leaves holes rather than renumbering.
//
// Uniqueness of usernames and genre/mood names is NOT enforced here; only
// the sqlite backend carries those constraints. This is a documented
// inconsistency between the two variants.
type MemoryStore struct {
	mu sync.RWMutex

	users  map[int64]models.User
	tracks map[int64]models.Track
	genres map[int64]models.Genre
	moods  map[int64]models.Mood

	nextUserID  int64
	nextTrackID int64
	nextGenreID int64
	nextMoodID  int64

	refreshTokens map[string]refreshToken
}

type refreshToken struct {
	userID int64
	expiry time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs a memory store pre-populated with the default
// genres, moods, and admin user.
func NewMemoryStore(adminPassword string) (*MemoryStore, error) {
	s := &MemoryStore{
		users:         make(map[int64]models.User),
		tracks:        make(map[int64]models.Track),
		genres:        make(map[int64]models.Genre),
		moods:         make(map[int64]models.Mood),
		nextUserID:    1,
		nextTrackID:   1,
		nextGenreID:   1,
		nextMoodID:    1,
		refreshTokens: make(map[string]refreshToken),
	}
	if err := seed(s, s, adminPassword); err != nil {
		return nil, err
	}
	return s, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error { return nil }

// === User ===

func (s *MemoryStore) GetUser(id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(in models.InsertUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{
		ID:       s.nextUserID,
		Username: in.Username,
		Password: in.Password,
		IsAdmin:  false,
	}
	s.nextUserID++
	s.users[u.ID] = u
	return &u, nil
}

// setUserAdmin flips the admin flag; used by seeding only.
func (s *MemoryStore) setUserAdmin(id int64, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsAdmin = isAdmin
	s.users[id] = u
	return nil
}

// === Track ===

// GetTracks returns all tracks in insertion order (ascending id; ids are
// monotonic so the two orders coincide).
func (s *MemoryStore) GetTracks() ([]models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterTracks(func(models.Track) bool { return true }), nil
}

func (s *MemoryStore) GetTrack(id int64) (*models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tracks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *MemoryStore) GetFeaturedTracks() ([]models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterTracks(func(t models.Track) bool { return t.Featured }), nil
}

// GetTracksByGenre matches the genre field exactly (case-sensitive).
func (s *MemoryStore) GetTracksByGenre(genre string) ([]models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterTracks(func(t models.Track) bool { return t.Genre == genre }), nil
}

// GetTracksByMood matches the mood field exactly (case-sensitive).
func (s *MemoryStore) GetTracksByMood(mood string) ([]models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterTracks(func(t models.Track) bool { return t.Mood == mood }), nil
}

// filterTracks returns matching tracks sorted by id. Callers hold the lock.
func (s *MemoryStore) filterTracks(keep func(models.Track) bool) []models.Track {
	out := make([]models.Track, 0)
	for _, t := range s.tracks {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) CreateTrack(in models.InsertTrack) (*models.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := models.Track{
		ID:        s.nextTrackID,
		Title:     in.Title,
		FileName:  in.FileName,
		Genre:     in.Genre,
		Mood:      in.Mood,
		Duration:  in.Duration,
		BPM:       in.BPM,
		Key:       in.Key,
		Featured:  in.Featured,
		CreatedAt: time.Now(),
	}
	s.nextTrackID++
	s.tracks[t.ID] = t
	return &t, nil
}

// UpdateTrack merges the partial update over the existing record. Id and
// createdAt are never touched.
func (s *MemoryStore) UpdateTrack(id int64, update models.TrackUpdate) (*models.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.tracks[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated := update.Apply(current)
	s.tracks[id] = updated
	return &updated, nil
}

// DeleteTrack removes the record only; the audio asset on disk is the route
// layer's responsibility. Returns false for unknown ids.
func (s *MemoryStore) DeleteTrack(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tracks[id]; !ok {
		return false, nil
	}
	delete(s.tracks, id)
	return true, nil
}

// === Genre ===

func (s *MemoryStore) GetGenres() ([]models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetGenre(id int64) (*models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.genres[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (s *MemoryStore) CreateGenre(in models.InsertGenre) (*models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := models.Genre{
		ID:       s.nextGenreID,
		Name:     in.Name,
		ImageURL: in.ImageURL,
	}
	s.nextGenreID++
	s.genres[g.ID] = g
	return &g, nil
}

// === Mood ===

func (s *MemoryStore) GetMoods() ([]models.Mood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Mood, 0, len(s.moods))
	for _, m := range s.moods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetMood(id int64) (*models.Mood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.moods[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *MemoryStore) CreateMood(in models.InsertMood) (*models.Mood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := models.Mood{
		ID:   s.nextMoodID,
		Name: in.Name,
	}
	s.nextMoodID++
	s.moods[m.ID] = m
	return &m, nil
}

// === Refresh tokens ===

func (s *MemoryStore) StoreRefreshToken(userID int64, tokenHash string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens[tokenHash] = refreshToken{userID: userID, expiry: expiry}
	return nil
}

func (s *MemoryStore) ValidateRefreshToken(tokenHash string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.refreshTokens[tokenHash]
	if !ok || time.Now().After(rt.expiry) {
		return 0, ErrNotFound
	}
	return rt.userID, nil
}

func (s *MemoryStore) DeleteRefreshToken(tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refreshTokens, tokenHash)
	return nil
}
