// Package postgres implements the storage.Backend interface on PostgreSQL through the
// database manager, falling back to a local SQLite database when Postgres is unreachable.
package postgres

import (
	"fmt"
	"log/slog"

	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/database"
	gormstorage "github.com/routeboard/engine/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Dependencies holds all dependencies for the Postgres storage backend.
type Dependencies struct {
	DB           config.DBConfig
	FallbackPath string // SQLite DSN used when Postgres cannot be reached; empty = in-memory
	Logger       *slog.Logger
	DBLogger     zerolog.Logger
}

// Backend wraps the GORM backend with a managed Postgres connection.
type Backend struct {
	*gormstorage.Backend
	manager *database.Manager
}

// New connects to Postgres and wraps the connection in a GORM backend.
func New(deps Dependencies) (*Backend, error) {
	manager := database.NewManager(deps.DBLogger)
	if err := manager.Connect(deps.DB, deps.FallbackPath); err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:     manager.DB,
			Logger: deps.Logger,
		}),
		manager: manager,
	}, nil
}

// Init migrates the schema through the database manager.
func (b *Backend) Init() error {
	if err := b.manager.Setup(); err != nil {
		return err
	}
	return b.Backend.Init()
}

// Local reports whether the backend fell back to SQLite.
func (b *Backend) Local() bool {
	return b.manager.ShouldSaveLocal
}

// Close closes the embedded GORM backend and the connection pool.
func (b *Backend) Close() error {
	if err := b.Backend.Close(); err != nil {
		return err
	}
	return b.manager.Close()
}
