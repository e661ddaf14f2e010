package board

import (
	"fmt"
	"strings"

	"github.com/routeboard/engine/internal/drawing"
	"github.com/routeboard/engine/pkg/core"
)

// Keys understood by KeyDown
const (
	KeyEscape    = "escape"
	KeyBackspace = "backspace"
	KeyEnter     = "enter"
)

func (s *Service) env() drawing.Env {
	return drawing.Env{
		Tool:          s.tool,
		SelectedStyle: s.style,
		HeadStyle:     s.head,
		Color:         s.color,
		StrokeWidth:   s.strokeWidth,
		MaxSegments:   s.maxSegments,
		WarningTTL:    s.warningTTL,
		Now:           s.deps.Now(),
		Field:         s.diagram.Field,
		Players:       s.livePlayer,
		NewID:         s.deps.NewID,
		MarqueeActive: s.marquee,
	}
}

// livePlayer resolves a player at its dragged position while a drag is in progress
func (s *Service) livePlayer(id string) (core.Player, bool) {
	p, ok := s.diagram.Player(id)
	if ok && s.drag != nil && s.drag.id == id {
		p.X, p.Y = s.drag.to.X, s.drag.to.Y
	}
	return p, ok
}

// reduce runs one drawing transition and commits a finished arrow
func (s *Service) reduce(ev drawing.Event) bool {
	next, out := drawing.Reduce(s.session, ev, s.env())
	if !out.Changed {
		return false
	}
	s.session = next
	s.deps.Tracer.Trace("drawing.transition",
		"event", fmt.Sprintf("%T", ev),
		"drawing", next.Drawing,
		"points", len(next.CommittedPoints)/2,
		"segments", next.Segments(),
		"warning", next.Warning,
	)

	if out.Arrow != nil {
		arrows := make([]core.Arrow, 0, len(s.diagram.Arrows)+1)
		arrows = append(arrows, s.diagram.Arrows...)
		arrows = append(arrows, *out.Arrow)
		s.commit(core.Mutation{Arrows: &arrows})
	}
	return true
}

// Click starts an arrow while idle and adds a point while drawing.
// playerID is the player under the pointer, if any.
func (s *Service) Click(at core.Point, playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Drawing {
		return s.reduce(drawing.AddPoint{At: at})
	}
	return s.reduce(drawing.StartDraw{At: at, TargetPlayerID: playerID})
}

// DoubleClick completes the arrow being drawn
func (s *Service) DoubleClick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reduce(drawing.Complete{})
}

// PointerMove updates the drawing preview
func (s *Service) PointerMove(at core.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reduce(drawing.Preview{At: at})
}

// KeyDown maps Escape to cancel, Backspace to undo-last-point and Enter to complete
func (s *Service) KeyDown(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch strings.ToLower(key) {
	case KeyEscape:
		return s.reduce(drawing.Cancel{})
	case KeyBackspace:
		return s.reduce(drawing.Undo{})
	case KeyEnter:
		return s.reduce(drawing.Complete{})
	}
	return false
}

// Tick expires the segment-limit warning once its time has passed
func (s *Service) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reduce(drawing.Tick{})
}

// SelectTool switches the active tool. Leaving the arrow tool cancels any drawing.
func (s *Service) SelectTool(t drawing.Tool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !t.Valid() || t == s.tool {
		return false
	}
	if s.tool == drawing.ToolArrow {
		s.reduce(drawing.Cancel{})
	}
	s.tool = t
	return true
}

// SelectStyle sets the style of the next segment
func (s *Service) SelectStyle(style core.SegmentStyle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !style.Valid() {
		return false
	}
	s.style = style
	return true
}

// SelectHeadStyle sets the head of the next finished arrow
func (s *Service) SelectHeadStyle(head core.HeadStyle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !head.Valid() {
		return false
	}
	s.head = head
	return true
}

// SetSnap toggles snapping. A non-positive tolerance keeps the current one.
func (s *Service) SetSnap(enabled bool, tolerance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Enabled = enabled
	if tolerance > 0 {
		s.snap.Tolerance = tolerance
	}
	if !enabled {
		s.guides = nil
	}
}

// SetMaxSegments sets the segment cap per arrow. A non-positive value restores the default.
func (s *Service) SetMaxSegments(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSegments = n
}

// SetMarquee marks a competing selection gesture; previews are frozen while it is active
func (s *Service) SetMarquee(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marquee = active
}
