// Package sqlitestorage stores diagrams in SQLite through the GORM backend.
// The database lives in memory or on a file; an in-memory board can be dumped
// to DumpPath on a timer and once more when the backend closes.
package sqlitestorage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/database"
	gormstorage "github.com/routeboard/engine/internal/storage/gorm"

	"gorm.io/gorm"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	db       *gorm.DB
	cfg      config.SQLiteConfig
	log    *slog.Logger
	cancel context.CancelFunc
	done   sync.WaitGroup
}

// New creates a new SQLite storage backend. An empty cfg.Path uses the shared in-memory database.
func New(cfg config.SQLiteConfig, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := database.OpenSqlite(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	gormBackend := gormstorage.New(gormstorage.Dependencies{
		DB:     db,
		Logger: logger,
	})

	return &Backend{
		Backend: gormBackend,
		db:      db,
		cfg:     cfg,
		log:     logger,
	}, nil
}

// Init migrates the schema and, when a dump target is configured, starts dumping on DumpInterval.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}
	if b.cfg.DumpPath == "" || b.cfg.DumpInterval <= 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.done.Add(1)
	go b.dumpLoop(ctx)
	return nil
}

// Close stops the dump timer, writes a last dump and closes the connection.
func (b *Backend) Close() error {
	if b.cancel != nil {
		b.cancel()
		b.done.Wait()
		b.cancel = nil
	}

	if b.cfg.DumpPath != "" {
		if err := b.Dump(); err != nil {
			b.log.Error("Final dump failed", "error", err)
		}
	}

	if err := b.Backend.Close(); err != nil {
		return err
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dump writes a point-in-time copy of the database to cfg.DumpPath.
func (b *Backend) Dump() error {
	start := time.Now()
	if err := database.DumpMemoryDBToDisk(b.db, b.cfg.DumpPath); err != nil {
		return fmt.Errorf("dump to %s: %w", b.cfg.DumpPath, err)
	}
	b.log.Debug("Board database dumped", "path", b.cfg.DumpPath, "duration", time.Since(start))
	return nil
}

func (b *Backend) dumpLoop(ctx context.Context) {
	defer b.done.Done()
	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.Dump(); err != nil {
				b.log.Error("Periodic dump failed", "error", err)
			}
		}
	}
}
