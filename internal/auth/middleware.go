// filepath: internal/auth/middleware.go
package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"soundvault/internal/logging"
	"soundvault/internal/models"
	"soundvault/internal/store"
)

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Middleware provides authentication and authorization middleware.
type Middleware struct {
	Store  store.Store
	Tokens *TokenService
}

// NewMiddleware creates a new instance of Middleware.
func NewMiddleware(s store.Store, tokens *TokenService) *Middleware {
	return &Middleware{Store: s, Tokens: tokens}
}

// Authenticate checks for a valid JWT Bearer token OR Basic credentials.
// Both resolve against the same user records in the catalog store; this is
// the single admin-auth scheme of the service.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			// Tell the client we accept both
			w.Header().Set("WWW-Authenticate", `Basic realm="restricted", Bearer realm="restricted"`)
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		var user *models.User
		var err error

		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			user, err = m.Tokens.ValidateAccessToken(tokenString)
			if err != nil {
				logging.Log.Warnf("Authenticate: invalid Bearer token: %v", err)
				if strings.Contains(err.Error(), "expired") {
					writeError(w, http.StatusUnauthorized, "Token expired")
				} else {
					writeError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}
		} else if strings.HasPrefix(authHeader, "Basic ") {
			username, password, ok := r.BasicAuth()
			if !ok {
				writeError(w, http.StatusUnauthorized, "Invalid Basic Auth header")
				return
			}
			user, err = m.validateBasicAuth(username, password)
			if err != nil {
				logging.Log.Warnf("Authenticate: invalid Basic Auth: %v", err)
				writeError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
		} else {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserContextKey is the request-context key holding the authenticated user.
const UserContextKey = contextKey("user")

type contextKey string

// validateBasicAuth checks credentials against the catalog store. Passwords
// are stored in cleartext by design (see README); the comparison is at least
// constant-time.
func (m *Middleware) validateBasicAuth(username, password string) (*models.User, error) {
	user, err := m.Store.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("user %q not found", username)
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return nil, fmt.Errorf("password mismatch for user %q", username)
	}
	return user, nil
}

// RequireAdmin rejects authenticated users without the admin flag.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(UserContextKey).(*models.User)
		if !ok {
			logging.Log.Warnf("RequireAdmin: no user found in context for %s", r.URL.Path)
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		if !user.IsAdmin {
			logging.Log.Warnf("RequireAdmin: access denied for non-admin user %q on %s", user.Username, r.URL.Path)
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext extracts the authenticated user, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}
