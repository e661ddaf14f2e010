// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/storage"
	v1 "github.com/routeboard/engine/internal/storage/memory/export/v1"
	"github.com/routeboard/engine/pkg/core"
)

// Backend keeps diagrams in memory and mirrors each save to a JSON export in OutputDir.
// An empty OutputDir keeps everything in memory only.
type Backend struct {
	cfg     config.MemoryConfig
	opts    v1.Options
	log     *slog.Logger
	entries map[string]core.Diagram

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig, geometry config.GeometryConfig, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		cfg: cfg,
		opts: v1.Options{
			ZigzagStep:      geometry.ZigzagStep,
			ZigzagAmplitude: geometry.ZigzagAmplitude,
		},
		log:     logger,
		entries: make(map[string]core.Diagram),
	}
}

// Init loads previously exported diagrams from OutputDir
func (b *Backend) Init() error {
	if b.cfg.OutputDir == "" {
		return nil
	}

	diagrams, err := b.readExports()
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range diagrams {
		b.entries[d.ID] = d
	}
	b.log.Debug("Loaded exported diagrams", "count", len(diagrams), "dir", b.cfg.OutputDir)
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// SaveDiagram stores a copy of d and writes its export file
func (b *Backend) SaveDiagram(d core.Diagram) error {
	if d.ID == "" {
		return fmt.Errorf("save diagram: empty id")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[d.ID] = d.Clone()
	if b.cfg.OutputDir == "" {
		return nil
	}
	return b.exportJSON(d)
}

// LoadDiagram returns a copy of the stored diagram
func (b *Backend) LoadDiagram(id string) (core.Diagram, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	d, ok := b.entries[id]
	if !ok {
		return core.Diagram{}, fmt.Errorf("load %q: %w", id, storage.ErrNotFound)
	}
	return d.Clone(), nil
}

// ListDiagrams returns summaries ordered by most recent update
func (b *Backend) ListDiagrams() ([]core.DiagramSummary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.DiagramSummary, 0, len(b.entries))
	for _, d := range b.entries {
		out = append(out, core.DiagramSummary{
			ID:        d.ID,
			Name:      d.Name,
			Players:   len(d.Players),
			Arrows:    len(d.Arrows),
			UpdatedAt: d.UpdatedAt,
		})
	}
	sortSummaries(out)
	return out, nil
}

// DeleteDiagram removes the diagram and its export file
func (b *Backend) DeleteDiagram(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.entries[id]; !ok {
		return fmt.Errorf("delete %q: %w", id, storage.ErrNotFound)
	}
	delete(b.entries, id)
	if b.cfg.OutputDir == "" {
		return nil
	}
	return b.removeExport(id)
}

// Export writes the stored diagram to OutputDir and returns the file path
func (b *Backend) Export(id string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.entries[id]
	if !ok {
		return "", fmt.Errorf("export %q: %w", id, storage.ErrNotFound)
	}
	if err := b.exportJSON(d); err != nil {
		return "", err
	}
	return b.lastExportPath, nil
}

// GetExportedFilePath returns the path of the most recent export
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

func sortSummaries(s []core.DiagramSummary) {
	sort.Slice(s, func(i, j int) bool {
		if !s[i].UpdatedAt.Equal(s[j].UpdatedAt) {
			return s[i].UpdatedAt.After(s[j].UpdatedAt)
		}
		return s[i].ID < s[j].ID
	})
}
