// filepath: internal/store/sqlite_users.go
package store

import (
	"database/sql"
	"fmt"

	"soundvault/internal/logging"
	"soundvault/internal/models"
)

// GetUser retrieves a user by id, using the cache for repeat lookups.
func (s *SQLiteStore) GetUser(id int64) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_id_%d", id)
	if u, found := s.Cache.Get(cacheKey); found {
		return u.(*models.User), nil
	}

	logging.Log.Debugf("GetUser: cache miss for id %d, querying DB", id)
	row := s.Builder.
		Select("id", "username", "password", "is_admin").
		From("users").
		Where("id = ?", id).
		QueryRow()

	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	s.cacheUser(user)
	return user, nil
}

// GetUserByUsername retrieves a user by name, using the cache for repeat
// lookups.
func (s *SQLiteStore) GetUserByUsername(username string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_name_%s", username)
	if u, found := s.Cache.Get(cacheKey); found {
		return u.(*models.User), nil
	}

	logging.Log.Debugf("GetUserByUsername: cache miss for %q, querying DB", username)
	row := s.Builder.
		Select("id", "username", "password", "is_admin").
		From("users").
		Where("username = ?", username).
		QueryRow()

	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	s.cacheUser(user)
	return user, nil
}

// CreateUser inserts a new user. The admin flag always defaults to false.
func (s *SQLiteStore) CreateUser(in models.InsertUser) (*models.User, error) {
	res, err := s.Builder.
		Insert("users").
		Columns("username", "password", "is_admin").
		Values(in.Username, in.Password, false).
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	logging.Log.Debugf("CreateUser: user %q created with id %d", in.Username, id)
	return &models.User{
		ID:       id,
		Username: in.Username,
		Password: in.Password,
		IsAdmin:  false,
	}, nil
}

// setUserAdmin flips the admin flag; used by seeding only.
func (s *SQLiteStore) setUserAdmin(id int64, isAdmin bool) error {
	res, err := s.Builder.
		Update("users").
		Set("is_admin", isAdmin).
		Where("id = ?", id).
		Exec()
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.invalidateUserCache(id)
	return nil
}

// cacheUser stores a user under both cache keys.
func (s *SQLiteStore) cacheUser(u *models.User) {
	s.Cache.Set(fmt.Sprintf("user_by_id_%d", u.ID), u, userCacheTTL)
	s.Cache.Set(fmt.Sprintf("user_by_name_%s", u.Username), u, userCacheTTL)
}

// invalidateUserCache drops both cache keys for a user id.
func (s *SQLiteStore) invalidateUserCache(id int64) {
	if u, found := s.Cache.Get(fmt.Sprintf("user_by_id_%d", id)); found {
		s.Cache.Delete(fmt.Sprintf("user_by_name_%s", u.(*models.User).Username))
	}
	s.Cache.Delete(fmt.Sprintf("user_by_id_%d", id))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.IsAdmin); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
