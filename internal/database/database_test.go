package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host:     "db",
		Port:     "5433",
		Username: "u",
		Password: "p",
		Database: "boards",
	})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=boards sslmode=disable", dsn)
}

func TestOpenSqlite_Migrate(t *testing.T) {
	db, err := OpenSqlite(memoryDSN("migrate"))
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	for _, m := range model.DatabaseModels {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestManager_ConnectSqliteAndSetup(t *testing.T) {
	m := NewManager(zerolog.Nop())
	require.NoError(t, m.ConnectSqlite(memoryDSN("manager")))
	assert.True(t, m.IsValid)
	assert.True(t, m.ShouldSaveLocal)

	require.NoError(t, m.Setup())
	assert.True(t, m.DB.Migrator().HasTable(&model.Diagram{}))

	require.NoError(t, m.Close())
	assert.False(t, m.IsValid)
}

func TestManager_CloseWithoutConnection(t *testing.T) {
	assert.NoError(t, NewManager(zerolog.Nop()).Close())
}

func TestDumpMemoryDBToDisk(t *testing.T) {
	db, err := OpenSqlite(memoryDSN("dump"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&model.Diagram{ID: "d1", Name: "dumped"}).Error)

	path := filepath.Join(t.TempDir(), "dump.db")
	// a stale file is replaced
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, DumpMemoryDBToDisk(db, path))

	disk, err := OpenSqlite(path)
	require.NoError(t, err)
	var got model.Diagram
	require.NoError(t, disk.First(&got, "id = ?", "d1").Error)
	assert.Equal(t, "dumped", got.Name)
}

func TestDumpMemoryDBToDisk_NoPath(t *testing.T) {
	db, err := OpenSqlite(memoryDSN("nopath"))
	require.NoError(t, err)
	assert.Error(t, DumpMemoryDBToDisk(db, ""))
}
