package main

import (
	"fmt"

	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/storage"
	"github.com/routeboard/engine/internal/storage/memory"
	pgstorage "github.com/routeboard/engine/internal/storage/postgres"
	sqlitestorage "github.com/routeboard/engine/internal/storage/sqlite"
)

// openStorage creates the configured backend and initializes it
func openStorage() (storage.Backend, error) {
	storageCfg := config.GetStorageConfig()

	backend, err := createStorageBackend(storageCfg)
	if err != nil {
		Logger.Error("Failed to create storage backend", "error", err)
		return nil, err
	}
	if err := backend.Init(); err != nil {
		Logger.Error("Failed to initialize storage backend", "error", err)
		_ = backend.Close()
		return nil, fmt.Errorf("failed to initialize %s storage: %w", storageCfg.Type, err)
	}
	return backend, nil
}

func createStorageBackend(storageCfg config.StorageConfig) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		backend, err := pgstorage.New(pgstorage.Dependencies{
			DB:           config.GetDBConfig(),
			FallbackPath: storageCfg.SQLite.Path,
			Logger:       Logger,
			DBLogger:     DBLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres backend: %w", err)
		}
		if backend.Local() {
			Logger.Warn("Postgres unreachable, using local SQLite storage")
		} else {
			Logger.Info("Postgres storage backend initialized")
		}
		return backend, nil

	case "sqlite":
		backend, err := sqlitestorage.New(storageCfg.SQLite, Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		Logger.Info("SQLite storage backend initialized", "path", storageCfg.SQLite.Path)
		return backend, nil

	case "memory", "":
		Logger.Info("Memory storage backend initialized", "outputDir", storageCfg.Memory.OutputDir)
		return memory.New(storageCfg.Memory, config.GetGeometryConfig(), Logger), nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", storageCfg.Type)
	}
}
