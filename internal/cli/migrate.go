// filepath: internal/cli/migrate.go
package cli

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"soundvault/internal/db/migrations"
)

var migrateDBPath string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the sqlite catalog schema",
	Long:  "Apply, roll back, or inspect the embedded schema migrations. Only meaningful for the sqlite backend.",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrationDB(func(db *sql.DB) error {
			return goose.Up(db, ".")
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrationDB(func(db *sql.DB) error {
			return goose.Down(db, ".")
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrationDB(func(db *sql.DB) error {
			return goose.Status(db, ".")
		})
	},
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrateDBPath, "db", "soundvault.db", "sqlite database path")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	RootCmd.AddCommand(migrateCmd)
}

func withMigrationDB(fn func(db *sql.DB) error) error {
	db, err := sql.Open("sqlite", migrateDBPath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", migrateDBPath, err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return fn(db)
}
