// filepath: internal/store/sqlite.go
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"soundvault/internal/db/migrations"
	"soundvault/internal/logging"
)

// SQLiteStore is the relational catalog store. Uniqueness of usernames and
// genre/mood names is enforced at the column level; user lookups go through
// a short-lived cache.
type SQLiteStore struct {
	DB      *sql.DB
	Cache   *cache.Cache
	Builder squirrel.StatementBuilderType // SQL query builder
}

var _ Store = (*SQLiteStore)(nil)

const userCacheTTL = 5 * time.Minute

// NewSQLiteStore opens (or creates) the database at path, bootstraps the
// schema on a fresh file, validates the schema version otherwise, and seeds
// the default catalog data when the users table is empty.
func NewSQLiteStore(path, adminPassword string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{
		DB:      db,
		Cache:   cache.New(userCacheTTL, 10*time.Minute),
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question).RunWith(db),
	}

	if err := s.EnsureSchemaBootstrapped(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.ValidateSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.ensureSeeded(adminPassword); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}

// EnsureSchemaBootstrapped auto-migrates a fresh database. An existing
// database (one that already has a goose version table) is left alone so
// that upgrades go through `soundvault migrate up` explicitly.
func (s *SQLiteStore) EnsureSchemaBootstrapped() error {
	var name string
	err := s.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'").Scan(&name)
	if err == nil {
		// Version table exists; this is not a fresh database.
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to inspect database: %w", err)
	}

	logging.Log.Info("Fresh database detected, applying migrations...")
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(s.DB, "."); err != nil {
		return fmt.Errorf("failed to bootstrap database: %w", err)
	}
	return nil
}

// ValidateSchema checks that the database is at the latest known migration
// version and refuses to run otherwise.
func (s *SQLiteStore) ValidateSchema() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	current, err := goose.GetDBVersion(s.DB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	all, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("failed to collect migrations: %w", err)
	}
	latest := int64(0)
	if len(all) > 0 {
		latest = all[len(all)-1].Version
	}

	if current < latest {
		return fmt.Errorf("database schema is outdated (version %d, expected %d); run 'soundvault migrate up'", current, latest)
	}
	return nil
}

// ensureSeeded seeds the default catalog data exactly once per database
// lifetime, using an empty users table as the freshness signal.
func (s *SQLiteStore) ensureSeeded(adminPassword string) error {
	var count int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("failed to check for seeded data: %w", err)
	}
	if count > 0 {
		return nil
	}
	return seed(s, s, adminPassword)
}
