package monitor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/routeboard/engine/internal/board"
	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/drawing"
	"github.com/routeboard/engine/internal/storage/memory"
	"github.com/routeboard/engine/internal/worker"
	"github.com/routeboard/engine/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, statusPath string) (*Service, *board.Service, *worker.SnapshotWriter) {
	t.Helper()
	backend := memory.New(config.MemoryConfig{}, config.GeometryConfig{}, nil)
	writer := worker.NewSnapshotWriter(backend, time.Hour, nil)
	svc := board.New(core.Diagram{
		ID:     "d1",
		Field:  core.Field{Width: 800, Height: 600},
		Center: core.Center{ID: "center", X: 400, Y: 400},
	}, board.Config{}, board.Dependencies{OnCommit: writer.Push})

	return NewService(Dependencies{
		Board:      svc,
		Writer:     writer,
		StatusPath: statusPath,
		Interval:   10 * time.Millisecond,
	}), svc, writer
}

func TestGetStatus(t *testing.T) {
	s, svc, writer := newTestService(t, "")

	_, err := svc.PlacePlayer(core.Player{Team: core.TeamOffense, X: 100, Y: 500, Size: 20})
	require.NoError(t, err)
	svc.SelectTool(drawing.ToolArrow)

	st := s.GetStatus()
	assert.Equal(t, "d1", st.DiagramID)
	assert.Equal(t, 1, st.Players)
	assert.Equal(t, 0, st.Arrows)
	assert.Equal(t, "arrow", st.Tool)
	assert.True(t, st.CanUndo)
	assert.Equal(t, 1, st.PendingSnapshots)

	require.NoError(t, writer.Flush())
	st = s.GetStatus()
	assert.Equal(t, 0, st.PendingSnapshots)
	assert.Equal(t, 1, st.SnapshotsWritten)
}

func TestGetStatus_NoWriter(t *testing.T) {
	s, svc, _ := newTestService(t, "")
	s.deps.Writer = nil

	st := s.GetStatus()
	assert.Equal(t, svc.Snapshot().ID, st.DiagramID)
	assert.Zero(t, st.PendingSnapshots)
}

func TestWriteStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	s, _, _ := newTestService(t, path)

	require.NoError(t, s.WriteStatus())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var st Status
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, "d1", st.DiagramID)
	assert.Equal(t, "select", st.Tool)
}

func TestWriteStatus_NoPath(t *testing.T) {
	s, _, _ := newTestService(t, "")
	assert.NoError(t, s.WriteStatus())
}

func TestStartStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	s, _, _ := newTestService(t, path)
	require.NoError(t, s.RegisterMetrics())

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	require.NoError(t, s.Start(), "second start is a no-op")

	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.FileExists(t, path)

	// stopping an idle monitor only refreshes the file
	s.Stop()
}
