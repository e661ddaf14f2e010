package storage

import (
	"errors"

	"github.com/routeboard/engine/pkg/core"
)

// ErrNotFound is returned when a diagram id has no stored snapshot
var ErrNotFound = errors.New("diagram not found")

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Snapshots. SaveDiagram replaces any stored snapshot with the same id.
	SaveDiagram(d core.Diagram) error
	LoadDiagram(id string) (core.Diagram, error)
	ListDiagrams() ([]core.DiagramSummary, error)
	DeleteDiagram(id string) error
}

// Exportable is an optional interface for storage backends that write
// diagrams to standalone files.
type Exportable interface {
	Export(id string) (string, error)
	// GetExportedFilePath returns the file written by the last save or export, empty if none.
	GetExportedFilePath() string
}
