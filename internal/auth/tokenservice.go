// filepath: internal/auth/tokenservice.go
// Package auth provides the admin authentication for the catalog API: a JWT
// token service plus HTTP middleware accepting either Basic credentials or a
// Bearer access token, both checked against users held by the catalog store.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"soundvault/internal/config"
	"soundvault/internal/models"
	"soundvault/internal/store"
)

// accessClaims defines the custom claims for the short-lived access token.
type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// refreshClaims defines the claims for the long-lived, stateful refresh token.
type refreshClaims struct {
	jwt.RegisteredClaims
}

// TokenService creates and validates token pairs. Refresh tokens are
// stateful: their hashes live in the catalog store and can be revoked.
type TokenService struct {
	cfg   *config.Config
	store store.Store
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config, s store.Store) *TokenService {
	return &TokenService{cfg: cfg, store: s}
}

// hashToken hashes a token string (SHA-256) for storage.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// GenerateTokens creates, signs, and stores a new token pair.
func (s *TokenService) GenerateTokens(user *models.User) (string, string, error) {
	// 1. Access token (short-lived, stateless)
	accessExpiry := time.Now().Add(time.Minute * time.Duration(s.cfg.JWT.AccessDurationMin))
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, &accessClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
			Issuer:    "soundvault",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	})
	signedAccess, err := access.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	// 2. Refresh token (long-lived, stateful)
	refreshExpiry := time.Now().Add(time.Hour * time.Duration(s.cfg.JWT.RefreshDurationHours))
	jtiBytes := make([]byte, 16)
	if _, err := rand.Read(jtiBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate token id: %w", err)
	}
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, &refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
			Issuer:    "soundvault",
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        hex.EncodeToString(jtiBytes),
		},
	})
	signedRefresh, err := refresh.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	// 3. Store the hash of the refresh token
	if err := s.store.StoreRefreshToken(user.ID, hashToken(signedRefresh), refreshExpiry); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return signedAccess, signedRefresh, nil
}

// ValidateAccessToken checks an access token (stateless) and returns the
// associated user.
func (s *TokenService) ValidateAccessToken(tokenString string) (*models.User, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err // Handles expired tokens as well
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	user, err := s.store.GetUserByUsername(claims.Username)
	if err != nil {
		return nil, errors.New("user not found for token")
	}
	return user, nil
}

// ValidateRefreshToken checks a refresh token's signature AND its presence
// in the store, so revoked tokens fail even before expiry.
func (s *TokenService) ValidateRefreshToken(tokenString string) (*models.User, error) {
	claims := &refreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid refresh token signature or claims")
	}

	userID, err := s.store.ValidateRefreshToken(hashToken(tokenString))
	if err != nil {
		return nil, fmt.Errorf("token not found in store (revoked or expired): %w", err)
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, errors.New("user not found for valid token")
	}
	return user, nil
}

// Logout invalidates a refresh token by deleting its hash.
func (s *TokenService) Logout(refreshToken string) error {
	return s.store.DeleteRefreshToken(hashToken(refreshToken))
}

// GenerateSecret creates a new random secret for signing JWTs.
func GenerateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
