// Package board is the host-side owner of one live diagram. It feeds pointer and keyboard
// input through the drawing reducer, applies zone, snap and link rules to player edits and
// reports every committed change to a Sink as a replacement of the affected collections.
package board

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/drawing"
	"github.com/routeboard/engine/internal/history"
	"github.com/routeboard/engine/internal/link"
	"github.com/routeboard/engine/internal/logging"
	"github.com/routeboard/engine/internal/snap"
	"github.com/routeboard/engine/internal/zone"
	"github.com/routeboard/engine/pkg/core"
)

// Sink receives every committed change
type Sink interface {
	Apply(core.Mutation)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(core.Mutation)

// Apply calls f(m)
func (f SinkFunc) Apply(m core.Mutation) { f(m) }

// Config holds the editor defaults
type Config struct {
	Drawing      config.DrawingConfig
	Snap         config.SnapConfig
	HistoryLimit int
}

// ConfigFromViper builds a Config from the loaded configuration
func ConfigFromViper() Config {
	return Config{
		Drawing: config.GetDrawingConfig(),
		Snap:    config.GetSnapConfig(),
	}
}

// Dependencies holds the collaborators of a Service. All fields are optional.
type Dependencies struct {
	Sink     Sink
	OnCommit func(core.Diagram) // called with a copy of the diagram after each commit
	Tracer   *logging.Tracer
	Logger   *slog.Logger
	Now      func() time.Time
	NewID    func() string
}

// UIState is the transient editor state a host renders on top of the diagram
type UIState struct {
	Tool          drawing.Tool      `json:"tool"`
	Style         core.SegmentStyle `json:"style"`
	HeadStyle     core.HeadStyle    `json:"headStyle"`
	SnapEnabled   bool              `json:"snapEnabled"`
	SnapTolerance float64           `json:"snapTolerance"`
	MaxSegments   int               `json:"maxSegments"`
	Flipped       bool              `json:"flipped"`
	Session       drawing.Session   `json:"session"`
	Guides        []core.Guide      `json:"guides"`
	LiveArrows    []core.Arrow      `json:"liveArrows,omitempty"`
	CanUndo       bool              `json:"canUndo"`
	CanRedo       bool              `json:"canRedo"`
}

type playerDrag struct {
	id   string
	from core.Point
	to   core.Point
}

type handleDrag struct {
	arrowID string
	index   int
	arrow   core.Arrow
}

// Service serializes all edits to one diagram
type Service struct {
	mu   sync.Mutex
	deps Dependencies

	diagram core.Diagram
	session drawing.Session
	history *history.History

	tool        drawing.Tool
	style       core.SegmentStyle
	head        core.HeadStyle
	color       string
	strokeWidth float64
	maxSegments int
	warningTTL  time.Duration
	snap        snap.Engine
	marquee     bool

	guides     []core.Guide
	drag       *playerDrag
	handle     *handleDrag
	liveArrows []core.Arrow
	throttle   *link.Throttle
}

// New creates a service editing d
func New(d core.Diagram, cfg Config, deps Dependencies) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	style := core.SegmentStyle(cfg.Drawing.DefaultStyle)
	if !style.Valid() {
		style = core.StyleStraight
	}
	head := core.HeadStyle(cfg.Drawing.DefaultHead)
	if !head.Valid() {
		head = core.HeadNormal
	}
	engine := snap.NewEngine()
	engine.Enabled = cfg.Snap.Enabled
	if cfg.Snap.Tolerance > 0 {
		engine.Tolerance = cfg.Snap.Tolerance
	}

	s := &Service{
		deps:        deps,
		history:     history.New(cfg.HistoryLimit),
		tool:        drawing.ToolSelect,
		style:       style,
		head:        head,
		color:       cfg.Drawing.Color,
		strokeWidth: cfg.Drawing.StrokeWidth,
		maxSegments: cfg.Drawing.MaxSegments,
		warningTTL:  cfg.Drawing.WarningTTL,
		snap:        engine,
		throttle:    link.NewThrottle(),
	}
	s.load(d)
	return s
}

// Load replaces the edited diagram and resets all transient state
func (s *Service) Load(d core.Diagram) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(d)
	s.history.Clear()
}

func (s *Service) load(d core.Diagram) {
	s.diagram = d.Clone()
	if s.diagram.ID == "" {
		s.diagram.ID = s.deps.NewID()
	}
	if s.diagram.CreatedAt.IsZero() {
		s.diagram.CreatedAt = s.deps.Now().UTC()
	}
	if s.diagram.UpdatedAt.IsZero() {
		s.diagram.UpdatedAt = s.diagram.CreatedAt
	}
	s.diagram.Arrows = link.SyncAnchors(s.diagram.Arrows, s.diagram.Players)
	s.session = drawing.Session{}
	s.guides = nil
	s.drag = nil
	s.handle = nil
	s.liveArrows = nil
	s.throttle.Reset()
}

// Snapshot returns a copy of the committed diagram
func (s *Service) Snapshot() core.Diagram {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diagram.Clone()
}

// UIState returns a copy of the transient editor state
func (s *Service) UIState() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := UIState{
		Tool:          s.tool,
		Style:         s.style,
		HeadStyle:     s.head,
		SnapEnabled:   s.snap.Enabled,
		SnapTolerance: s.snap.Tolerance,
		MaxSegments:   s.maxSegments,
		Flipped:       zone.IsFieldFlipped(s.diagram.Center.Y, s.diagram.Field.Height),
		Session:       s.session,
		Guides:        append([]core.Guide(nil), s.guides...),
		CanUndo:       s.history.CanUndo(),
		CanRedo:       s.history.CanRedo(),
	}
	if st.MaxSegments <= 0 {
		st.MaxSegments = drawing.DefaultMaxSegments
	}
	if s.liveArrows != nil {
		st.LiveArrows = make([]core.Arrow, len(s.liveArrows))
		for i, a := range s.liveArrows {
			st.LiveArrows[i] = a.Clone()
		}
	}
	return st
}

// commit records the current diagram for undo, applies m and notifies the sink
func (s *Service) commit(m core.Mutation) {
	if m.Empty() {
		return
	}
	s.history.Record(s.diagram)
	s.apply(m)
}

func (s *Service) apply(m core.Mutation) {
	m.ApplyTo(&s.diagram)
	s.diagram.UpdatedAt = s.deps.Now().UTC()
	s.deps.Tracer.Trace("board.commit",
		"players", m.Players != nil,
		"arrows", m.Arrows != nil,
		"texts", m.Texts != nil,
		"center", m.Center != nil,
	)
	if s.deps.Sink != nil {
		s.deps.Sink.Apply(m)
	}
	if s.deps.OnCommit != nil {
		s.deps.OnCommit(s.diagram.Clone())
	}
}

// Undo restores the diagram before the last commit
func (s *Service) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.Undo(s.diagram)
	if !ok {
		return false
	}
	s.restore(prev)
	return true
}

// Redo reapplies the last undone commit
func (s *Service) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.history.Redo(s.diagram)
	if !ok {
		return false
	}
	s.restore(next)
	return true
}

func (s *Service) restore(d core.Diagram) {
	s.drag = nil
	s.handle = nil
	s.liveArrows = nil
	s.apply(core.Mutation{
		Players: &d.Players,
		Arrows:  &d.Arrows,
		Texts:   &d.Texts,
		Center:  &d.Center,
	})
}
