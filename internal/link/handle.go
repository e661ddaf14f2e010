package link

import (
	"github.com/routeboard/engine/internal/segment"
	"github.com/routeboard/engine/pkg/core"
)

// MoveHandle moves vertex pairIndex of the arrow's flattened polyline to p.
// For segmented arrows the matching vertex is moved in every segment that shares it,
// so a joint between two segments stays connected. The first vertex of an anchored
// arrow belongs to its player and cannot be moved. Out-of-range indexes are a no-op.
func MoveHandle(a core.Arrow, pairIndex int, p core.Point) core.Arrow {
	if pairIndex < 0 || 2*pairIndex+1 >= len(a.Points) {
		return a
	}
	if pairIndex == 0 && a.Anchored() {
		return a
	}

	moved := a.Clone()
	if len(moved.Segments) == 0 {
		moved.Points[2*pairIndex] = p.X
		moved.Points[2*pairIndex+1] = p.Y
		return moved
	}

	// walk the segments the same way BuildPoints flattens them
	global := 0
	first := true
	for i := range moved.Segments {
		s := &moved.Segments[i]
		if !segment.Valid(*s) {
			continue
		}
		local := 0
		if !first {
			// the leading pair is the previous segment's joint
			local = 1
			if global-1 == pairIndex {
				s.Points[0], s.Points[1] = p.X, p.Y
			}
		}
		for ; 2*local+1 < len(s.Points); local++ {
			if global == pairIndex {
				s.Points[2*local], s.Points[2*local+1] = p.X, p.Y
			}
			global++
		}
		first = false
	}

	moved.Points = segment.BuildPoints(moved.Segments)
	return moved
}
