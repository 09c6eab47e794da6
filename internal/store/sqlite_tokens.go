// filepath: internal/store/sqlite_tokens.go
package store

import (
	"database/sql"
	"time"
)

// StoreRefreshToken persists the hash of a refresh token with its expiry.
func (s *SQLiteStore) StoreRefreshToken(userID int64, tokenHash string, expiry time.Time) error {
	_, err := s.Builder.
		Insert("refresh_tokens").
		Columns("token_hash", "user_id", "expiry").
		Values(tokenHash, userID, expiry).
		Exec()
	return err
}

// ValidateRefreshToken returns the user id a stored, unexpired token hash
// belongs to, or ErrNotFound for revoked/expired/unknown hashes.
func (s *SQLiteStore) ValidateRefreshToken(tokenHash string) (int64, error) {
	var (
		userID int64
		expiry time.Time
	)
	err := s.Builder.
		Select("user_id", "expiry").
		From("refresh_tokens").
		Where("token_hash = ?", tokenHash).
		QueryRow().
		Scan(&userID, &expiry)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if time.Now().After(expiry) {
		// Lazily drop the expired row.
		_ = s.DeleteRefreshToken(tokenHash)
		return 0, ErrNotFound
	}
	return userID, nil
}

// DeleteRefreshToken revokes a token by removing its hash.
func (s *SQLiteStore) DeleteRefreshToken(tokenHash string) error {
	_, err := s.Builder.Delete("refresh_tokens").Where("token_hash = ?", tokenHash).Exec()
	return err
}
