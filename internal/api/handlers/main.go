// filepath: internal/api/handlers/main.go
package handlers

import (
	"soundvault/internal/auth"
	"soundvault/internal/config"
	"soundvault/internal/storage"
	"soundvault/internal/store"
)

// Handlers holds the shared dependencies for the API handlers: the catalog
// store, the audio asset store, and the token service.
type Handlers struct {
	Store  store.Store
	Assets *storage.AssetStore
	Tokens *auth.TokenService
	Cfg    *config.Config
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(s store.Store, assets *storage.AssetStore, tokens *auth.TokenService, cfg *config.Config) *Handlers {
	return &Handlers{
		Store:  s,
		Assets: assets,
		Tokens: tokens,
		Cfg:    cfg,
	}
}
