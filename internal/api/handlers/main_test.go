// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"soundvault/internal/auth"
	"soundvault/internal/config"
	"soundvault/internal/models"
	"soundvault/internal/storage"
	"soundvault/internal/store"
)

// MockStore is a testify mock of the catalog store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func (m *MockStore) GetUser(id int64) (*models.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateUser(in models.InsertUser) (*models.User, error) {
	args := m.Called(in)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetTracks() ([]models.Track, error) {
	args := m.Called()
	if t := args.Get(0); t != nil {
		return t.([]models.Track), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetTrack(id int64) (*models.Track, error) {
	args := m.Called(id)
	if t := args.Get(0); t != nil {
		return t.(*models.Track), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetFeaturedTracks() ([]models.Track, error) {
	args := m.Called()
	if t := args.Get(0); t != nil {
		return t.([]models.Track), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetTracksByGenre(genre string) ([]models.Track, error) {
	args := m.Called(genre)
	if t := args.Get(0); t != nil {
		return t.([]models.Track), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetTracksByMood(mood string) ([]models.Track, error) {
	args := m.Called(mood)
	if t := args.Get(0); t != nil {
		return t.([]models.Track), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateTrack(in models.InsertTrack) (*models.Track, error) {
	args := m.Called(in)
	if t := args.Get(0); t != nil {
		return t.(*models.Track), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) UpdateTrack(id int64, update models.TrackUpdate) (*models.Track, error) {
	args := m.Called(id, update)
	if t := args.Get(0); t != nil {
		return t.(*models.Track), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) DeleteTrack(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetGenres() ([]models.Genre, error) {
	args := m.Called()
	if g := args.Get(0); g != nil {
		return g.([]models.Genre), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetGenre(id int64) (*models.Genre, error) {
	args := m.Called(id)
	if g := args.Get(0); g != nil {
		return g.(*models.Genre), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateGenre(in models.InsertGenre) (*models.Genre, error) {
	args := m.Called(in)
	if g := args.Get(0); g != nil {
		return g.(*models.Genre), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetMoods() ([]models.Mood, error) {
	args := m.Called()
	if md := args.Get(0); md != nil {
		return md.([]models.Mood), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetMood(id int64) (*models.Mood, error) {
	args := m.Called(id)
	if md := args.Get(0); md != nil {
		return md.(*models.Mood), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateMood(in models.InsertMood) (*models.Mood, error) {
	args := m.Called(in)
	if md := args.Get(0); md != nil {
		return md.(*models.Mood), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) StoreRefreshToken(userID int64, tokenHash string, expiry time.Time) error {
	return m.Called(userID, tokenHash, expiry).Error(0)
}

func (m *MockStore) ValidateRefreshToken(tokenHash string) (int64, error) {
	args := m.Called(tokenHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) DeleteRefreshToken(tokenHash string) error {
	return m.Called(tokenHash).Error(0)
}

var _ store.Store = (*MockStore)(nil)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		MaxUploadSizeBytes: 10 << 20,
		JWT: config.JWTConfig{
			AccessDurationMin:    15,
			RefreshDurationHours: 24,
		},
	}
}

// newMockHandlers builds Handlers over a MockStore for unit tests that do
// not touch the filesystem.
func newMockHandlers(t *testing.T) (*Handlers, *MockStore) {
	t.Helper()
	ms := new(MockStore)
	cfg := testConfig()
	assets, err := storage.NewAssetStore(t.TempDir())
	require.NoError(t, err)
	return NewHandlers(ms, assets, auth.NewTokenService(cfg, ms), cfg), ms
}

// newLiveHandlers builds Handlers over a seeded memory store and a real
// asset directory for end-to-end handler tests.
func newLiveHandlers(t *testing.T) (*Handlers, *store.MemoryStore, *storage.AssetStore) {
	t.Helper()
	s, err := store.NewMemoryStore("admin123")
	require.NoError(t, err)
	assets, err := storage.NewAssetStore(t.TempDir())
	require.NoError(t, err)
	cfg := testConfig()
	return NewHandlers(s, assets, auth.NewTokenService(cfg, s), cfg), s, assets
}
