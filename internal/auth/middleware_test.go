// filepath: internal/auth/middleware_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundvault/internal/models"
	"soundvault/internal/store"
)

func newTestMiddleware(t *testing.T) (*Middleware, *store.MemoryStore) {
	t.Helper()
	svc, s := newTestTokenService(t)
	return NewMiddleware(s, svc), s
}

// okHandler records the authenticated user it sees.
func okHandler(seen **models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := UserFromContext(r.Context()); ok {
			*seen = u
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateRequiresHeader(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	var seen *models.User
	req := httptest.NewRequest(http.MethodPost, "/api/tracks", nil)
	rr := httptest.NewRecorder()
	mw.Authenticate(okHandler(&seen)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic")
	assert.Nil(t, seen)
}

func TestAuthenticateBasic(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	var seen *models.User
	req := httptest.NewRequest(http.MethodPost, "/api/tracks", nil)
	req.SetBasicAuth("admin", "admin123")
	rr := httptest.NewRecorder()
	mw.Authenticate(okHandler(&seen)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "admin", seen.Username)
}

func TestAuthenticateBasicWrongPassword(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	var seen *models.User
	req := httptest.NewRequest(http.MethodPost, "/api/tracks", nil)
	req.SetBasicAuth("admin", "wrong")
	rr := httptest.NewRecorder()
	mw.Authenticate(okHandler(&seen)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Nil(t, seen)
}

func TestAuthenticateBearer(t *testing.T) {
	mw, s := newTestMiddleware(t)

	admin, err := s.GetUserByUsername("admin")
	require.NoError(t, err)
	access, _, err := mw.Tokens.GenerateTokens(admin)
	require.NoError(t, err)

	var seen *models.User
	req := httptest.NewRequest(http.MethodPost, "/api/tracks", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rr := httptest.NewRecorder()
	mw.Authenticate(okHandler(&seen)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, seen)
	assert.Equal(t, admin.ID, seen.ID)
}

func TestAuthenticateBearerInvalid(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tracks", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rr := httptest.NewRecorder()
	var seen *models.User
	mw.Authenticate(okHandler(&seen)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	mw, s := newTestMiddleware(t)

	_, err := s.CreateUser(models.InsertUser{Username: "bob", Password: "builder"})
	require.NoError(t, err)

	var seen *models.User
	req := httptest.NewRequest(http.MethodPost, "/api/tracks", nil)
	req.SetBasicAuth("bob", "builder")
	rr := httptest.NewRecorder()
	mw.Authenticate(mw.RequireAdmin(okHandler(&seen))).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Nil(t, seen)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	var seen *models.User
	req := httptest.NewRequest(http.MethodPost, "/api/tracks", nil)
	req.SetBasicAuth("admin", "admin123")
	rr := httptest.NewRecorder()
	mw.Authenticate(mw.RequireAdmin(okHandler(&seen))).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, seen)
	assert.True(t, seen.IsAdmin)
}

func TestRequireAdminWithoutAuthentication(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	var seen *models.User
	req := httptest.NewRequest(http.MethodPost, "/api/tracks", nil)
	rr := httptest.NewRecorder()
	mw.RequireAdmin(okHandler(&seen)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
