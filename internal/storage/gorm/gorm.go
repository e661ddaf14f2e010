// Package gormstorage implements the storage.Backend interface on top of any GORM dialect.
// The sqlite and postgres backends wrap it and only own connection lifecycle.
package gormstorage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/routeboard/engine/internal/database"
	"github.com/routeboard/engine/internal/model"
	"github.com/routeboard/engine/internal/model/convert"
	"github.com/routeboard/engine/internal/storage"
	"github.com/routeboard/engine/pkg/core"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

// Backend implements storage.Backend using GORM.
type Backend struct {
	deps    Dependencies
	dbReady bool
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Backend{
		deps: deps,
	}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("gorm storage: no database connection")
	}
	if err := database.Migrate(b.deps.DB); err != nil {
		return err
	}
	b.dbReady = true
	b.deps.Logger.Debug("GORM storage ready", "dialect", b.deps.DB.Dialector.Name())
	return nil
}

// Close marks the backend unusable. The connection is owned by the caller.
func (b *Backend) Close() error {
	b.dbReady = false
	return nil
}

func (b *Backend) ready() error {
	if !b.dbReady {
		return fmt.Errorf("gorm storage: not initialized")
	}
	return nil
}

// SaveDiagram upserts the diagram row and replaces all of its children.
func (b *Backend) SaveDiagram(d core.Diagram) error {
	if err := b.ready(); err != nil {
		return err
	}
	if d.ID == "" {
		return fmt.Errorf("save diagram: empty id")
	}

	m := convert.CoreToDiagram(d)
	players, arrows, texts := m.Players, m.Arrows, m.Texts
	m.Players, m.Arrows, m.Texts = nil, nil, nil

	err := b.deps.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&m).Error; err != nil {
			return fmt.Errorf("upsert diagram: %w", err)
		}
		if err := deleteChildren(tx, d.ID); err != nil {
			return err
		}
		if len(players) > 0 {
			if err := tx.Create(&players).Error; err != nil {
				return fmt.Errorf("insert players: %w", err)
			}
		}
		if len(arrows) > 0 {
			if err := tx.Create(&arrows).Error; err != nil {
				return fmt.Errorf("insert arrows: %w", err)
			}
		}
		if len(texts) > 0 {
			if err := tx.Create(&texts).Error; err != nil {
				return fmt.Errorf("insert texts: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		b.deps.Logger.Error("Failed to save diagram", "id", d.ID, "error", err)
		return err
	}
	return nil
}

// LoadDiagram reads a diagram with all of its children.
func (b *Backend) LoadDiagram(id string) (core.Diagram, error) {
	if err := b.ready(); err != nil {
		return core.Diagram{}, err
	}

	var m model.Diagram
	err := b.deps.DB.
		Preload("Players").
		Preload("Arrows").
		Preload("Texts").
		First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Diagram{}, fmt.Errorf("load %q: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return core.Diagram{}, fmt.Errorf("load %q: %w", id, err)
	}

	d := convert.DiagramToCore(m)
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return d, nil
}

type childCount struct {
	DiagramID string
	N         int
}

func countChildren(db *gorm.DB, table string) (map[string]int, error) {
	var rows []childCount
	err := db.Table(table).
		Select("diagram_id, count(*) as n").
		Group("diagram_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", table, err)
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.DiagramID] = r.N
	}
	return out, nil
}

// ListDiagrams returns summaries ordered by most recent update.
func (b *Backend) ListDiagrams() ([]core.DiagramSummary, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}

	var diagrams []model.Diagram
	if err := b.deps.DB.Order("updated_at desc, id").Find(&diagrams).Error; err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	players, err := countChildren(b.deps.DB, (&model.Player{}).TableName())
	if err != nil {
		return nil, err
	}
	arrows, err := countChildren(b.deps.DB, (&model.Arrow{}).TableName())
	if err != nil {
		return nil, err
	}

	out := make([]core.DiagramSummary, 0, len(diagrams))
	for _, d := range diagrams {
		s := convert.DiagramToSummary(d, players[d.ID], arrows[d.ID])
		s.UpdatedAt = s.UpdatedAt.UTC()
		out = append(out, s)
	}
	return out, nil
}

// DeleteDiagram removes a diagram and its children.
func (b *Backend) DeleteDiagram(id string) error {
	if err := b.ready(); err != nil {
		return err
	}

	return b.deps.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&model.Diagram{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete %q: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete %q: %w", id, storage.ErrNotFound)
		}
		return nil
	})
}

func deleteChildren(tx *gorm.DB, diagramID string) error {
	for _, m := range []any{&model.Player{}, &model.Arrow{}, &model.Text{}} {
		if err := tx.Where("diagram_id = ?", diagramID).Delete(m).Error; err != nil {
			return fmt.Errorf("delete children: %w", err)
		}
	}
	return nil
}
