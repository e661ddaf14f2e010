package postgres

import (
	"testing"
	"time"

	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/storage"
	"github.com/routeboard/engine/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface check
var _ storage.Backend = (*Backend)(nil)

// unreachable points at a closed local port so the manager falls back to SQLite.
var unreachable = config.DBConfig{
	Host:     "127.0.0.1",
	Port:     "1",
	Username: "postgres",
	Password: "postgres",
	Database: "routeboard",
}

func TestNew_FallsBackToSqlite(t *testing.T) {
	b, err := New(Dependencies{
		DB:           unreachable,
		FallbackPath: "file:pgfallback?mode=memory&cache=shared",
		DBLogger:     zerolog.Nop(),
	})
	require.NoError(t, err)
	defer b.Close()

	assert.True(t, b.Local())
	require.NoError(t, b.Init())

	d := core.Diagram{
		ID:        "d1",
		Name:      "fallback",
		Field:     core.Field{Width: 800, Height: 600},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, b.SaveDiagram(d))

	got, err := b.LoadDiagram("d1")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got.Name)
}

func TestNew_FallbackFails(t *testing.T) {
	_, err := New(Dependencies{
		DB:           unreachable,
		FallbackPath: "/nonexistent-dir/sub/boards.db",
		DBLogger:     zerolog.Nop(),
	})
	assert.Error(t, err)
}
