// filepath: internal/cli/root.go
// Package cli implements the soundvault command line interface.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"soundvault/internal/api"
	"soundvault/internal/api/handlers"
	"soundvault/internal/auth"
	"soundvault/internal/config"
	"soundvault/internal/logging"
	"soundvault/internal/storage"
	"soundvault/internal/store"
)

var (
	configPath    string
	host          string
	port          int
	backend       string
	storePath     string
	uploadRoot    string
	logLevel      string
	adminPassword string
	jwtSecret     string
)

// RootCmd is the base command; running it starts the catalog server.
var RootCmd = &cobra.Command{
	Use:   "soundvault",
	Short: "SoundVault music licensing catalog server",
	Long: `SoundVault serves a music licensing catalog over HTTP: tracks with
uploaded audio assets, browsable genre and mood categories, and
admin-gated catalog management.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		return runServer(cfg)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	RootCmd.Flags().StringVar(&host, "host", "", "listen host (default 0.0.0.0)")
	RootCmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default 8080)")
	RootCmd.Flags().StringVar(&backend, "backend", "", "catalog store backend: memory or sqlite")
	RootCmd.Flags().StringVar(&storePath, "db", "", "sqlite database path")
	RootCmd.Flags().StringVar(&uploadRoot, "uploads", "", "directory for uploaded audio files")
	RootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level (trace, debug, info, warn, error)")
	RootCmd.Flags().StringVar(&adminPassword, "admin-password", "", "password for the seeded admin user")
	RootCmd.Flags().StringVar(&jwtSecret, "jwt-secret", "", "secret for signing JWTs")
}

// resolveConfig builds the effective configuration. Precedence, lowest to
// highest: built-in defaults, config file, SOUNDVAULT_* environment
// variables, command line flags.
func resolveConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)
	applyFlagOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.ParseAndValidate(); err != nil {
		return nil, err
	}

	if err := ensureJWTSecret(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("SOUNDVAULT_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SOUNDVAULT_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("SOUNDVAULT_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("SOUNDVAULT_DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("SOUNDVAULT_UPLOADS"); v != "" {
		cfg.Store.UploadRoot = v
	}
	if v := os.Getenv("SOUNDVAULT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SOUNDVAULT_ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}
	if v := os.Getenv("SOUNDVAULT_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
}

func applyFlagOverrides(cfg *config.Config) {
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if backend != "" {
		cfg.Store.Backend = backend
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	if uploadRoot != "" {
		cfg.Store.UploadRoot = uploadRoot
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if adminPassword != "" {
		cfg.AdminPassword = adminPassword
	}
	if jwtSecret != "" {
		cfg.JWTSecret = jwtSecret
	}
}

func applyDefaults(cfg *config.Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "soundvault.db"
	}
	if cfg.Store.UploadRoot == "" {
		cfg.Store.UploadRoot = "uploads"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
	}
	if cfg.JWT.AccessDurationMin == 0 {
		cfg.JWT.AccessDurationMin = 15
	}
	if cfg.JWT.RefreshDurationHours == 0 {
		cfg.JWT.RefreshDurationHours = 24 * 7
	}
}

// ensureJWTSecret resolves the signing secret: env/flag wins, then the
// config file's persisted secret, then a freshly generated one that is
// written back to the config file so tokens survive restarts.
func ensureJWTSecret(cfg *config.Config) error {
	if cfg.JWTSecret != "" {
		return nil
	}
	if cfg.JWT.Secret != "" {
		cfg.JWTSecret = cfg.JWT.Secret
		return nil
	}

	secret, err := auth.GenerateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	cfg.JWTSecret = secret
	cfg.JWT.Secret = secret

	if configPath != "" {
		if err := config.SaveConfig(configPath, cfg); err != nil {
			logging.Log.WithError(err).Warn("Failed to persist generated JWT secret; tokens will not survive restarts")
		} else {
			logging.Log.Info("Generated and persisted a new JWT secret")
		}
	} else {
		logging.Log.Warn("Using an ephemeral JWT secret; tokens will not survive restarts")
	}
	return nil
}

// openStore selects and opens the configured catalog store backend.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return store.NewSQLiteStore(cfg.Store.Path, cfg.AdminPassword)
	default:
		return store.NewMemoryStore(cfg.AdminPassword)
	}
}

// runServer starts the HTTP server and blocks until shutdown.
func runServer(cfg *config.Config) error {
	logging.Init(cfg.Logging.Level)

	catalog, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}
	defer catalog.Close()

	assets, err := storage.NewAssetStore(cfg.Store.UploadRoot)
	if err != nil {
		return fmt.Errorf("failed to open asset store: %w", err)
	}

	tokens := auth.NewTokenService(cfg, catalog)
	h := handlers.NewHandlers(catalog, assets, tokens, cfg)
	mw := auth.NewMiddleware(catalog, tokens)
	router := api.SetupRouter(h, mw)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logging.Log.WithFields(map[string]interface{}{
			"addr":    addr,
			"backend": cfg.Store.Backend,
		}).Info("Starting SoundVault server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logging.Log.Info("Server stopped")
	return nil
}
