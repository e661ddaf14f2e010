package board

import (
	"fmt"

	"github.com/routeboard/engine/internal/link"
	"github.com/routeboard/engine/internal/segment"
	"github.com/routeboard/engine/internal/zone"
	"github.com/routeboard/engine/pkg/core"
)

func (s *Service) arrowIndex(id string) int {
	for i, a := range s.diagram.Arrows {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) clampToField(p core.Point) core.Point {
	if s.diagram.Field.Width <= 0 || s.diagram.Field.Height <= 0 {
		return p
	}
	return zone.ClampToField(p, s.diagram.Field)
}

// DragHandle moves one arrow vertex transiently. Recomputation is rate limited;
// it reports whether LiveArrows was refreshed.
func (s *Service) DragHandle(arrowID string, index int, to core.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.arrowIndex(arrowID)
	if i < 0 {
		return false
	}
	if s.handle == nil || s.handle.arrowID != arrowID || s.handle.index != index {
		s.handle = &handleDrag{arrowID: arrowID, index: index}
		s.throttle.Reset()
	}
	if !s.throttle.Allow(s.deps.Now()) {
		return false
	}

	s.handle.arrow = link.MoveHandle(s.diagram.Arrows[i], index, s.clampToField(to))
	live := append([]core.Arrow(nil), s.diagram.Arrows...)
	live[i] = s.handle.arrow
	s.liveArrows = live
	return true
}

// EndDragHandle commits a vertex move. It always recomputes, whatever the throttle said.
func (s *Service) EndDragHandle(arrowID string, index int, to core.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handle = nil
	s.liveArrows = nil
	s.throttle.Reset()

	i := s.arrowIndex(arrowID)
	if i < 0 {
		return false
	}
	moved := link.MoveHandle(s.diagram.Arrows[i], index, s.clampToField(to))
	arrows := append([]core.Arrow(nil), s.diagram.Arrows...)
	arrows[i] = moved
	s.commit(core.Mutation{Arrows: &arrows})
	return true
}

// ImportArrow adds a finished arrow built outside the drawing session.
// Points are split into one segment of the primary style and optimized; an anchor to a
// missing player is dropped and an anchor to an existing one pins the start.
func (s *Service) ImportArrow(a core.Arrow) (core.Arrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !a.PrimaryType.Valid() {
		a.PrimaryType = s.style
	}
	if !a.HeadStyle.Valid() {
		a.HeadStyle = s.head
	}
	if a.Color == "" {
		a.Color = s.color
	}
	if a.StrokeWidth <= 0 {
		a.StrokeWidth = s.strokeWidth
	}
	if a.ID == "" {
		a.ID = s.deps.NewID()
	}
	if s.arrowIndex(a.ID) >= 0 {
		return core.Arrow{}, fmt.Errorf("import arrow: duplicate id %q", a.ID)
	}

	anchor, anchored := s.diagram.Player(a.AnchoredPlayerID)
	if !anchored {
		a.AnchoredPlayerID = ""
	}

	segments := a.Segments
	if len(segments) == 0 {
		segments = segment.FromPoints(a.Points, a.PrimaryType)
	}
	a.Segments = segment.Optimize(segments)
	if anchored && len(a.Segments) > 0 {
		a.Segments[0].Points[0], a.Segments[0].Points[1] = anchor.X, anchor.Y
	}
	a.Points = segment.BuildPoints(a.Segments)
	if len(a.Points) < 4 {
		return core.Arrow{}, fmt.Errorf("import arrow: no drawable points")
	}
	if anchored && (a.Points[0] != anchor.X || a.Points[1] != anchor.Y) {
		return core.Arrow{}, fmt.Errorf("import arrow: first segment collapses onto player %q", anchor.ID)
	}

	arrows := make([]core.Arrow, 0, len(s.diagram.Arrows)+1)
	arrows = append(arrows, s.diagram.Arrows...)
	arrows = append(arrows, a)
	s.commit(core.Mutation{Arrows: &arrows})
	return a.Clone(), nil
}
