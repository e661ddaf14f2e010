package worker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/routeboard/engine/internal/board"
	"github.com/routeboard/engine/internal/parser"
)

// ErrNoWriter is returned by :SAVE: when no snapshot writer is configured
var ErrNoWriter = errors.New("no snapshot writer configured")

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Board  *board.Service
	Parser *parser.Parser
	Writer *SnapshotWriter
	Logger *slog.Logger
}

// Manager turns dispatcher events into board operations
type Manager struct {
	deps Dependencies
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies) *Manager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Parser == nil {
		deps.Parser = parser.NewParser(deps.Logger)
	}
	return &Manager{deps: deps}
}

// GetLastDBWriteDuration returns the duration of the last snapshot write.
// Returns 0 if no writer is configured or nothing was written yet.
func (m *Manager) GetLastDBWriteDuration() time.Duration {
	if m.deps.Writer == nil {
		return 0
	}
	return m.deps.Writer.LastWriteDuration()
}
