// Package segment canonicalizes the raw segments collected while drawing an arrow
// into the connected, merged polyline that gets persisted.
package segment

import (
	"github.com/routeboard/engine/internal/geo"
	"github.com/routeboard/engine/pkg/core"
)

// Valid reports whether a segment can be drawn: at least two pairs, even length,
// finite values and a length of at least geo.MinSegmentLength. For a plain two-pair
// segment the length is the endpoint distance; waypoints are measured along the path
// so a merged run that loops back on itself is still kept.
func Valid(s core.Segment) bool {
	if len(s.Points) < 4 || len(s.Points)%2 != 0 {
		return false
	}
	if !geo.Finite(s.Points) {
		return false
	}
	return geo.PolylineLength(s.Points) >= geo.MinSegmentLength
}

// Optimize drops invalid segments, stitches each kept segment onto the end of the
// previous one and merges consecutive runs of the same style.
// It never panics; on an unexpected failure the input is returned as a copy.
func Optimize(segments []core.Segment) (out []core.Segment) {
	defer func() {
		if r := recover(); r != nil {
			out = cloneAll(segments)
		}
	}()

	kept := make([]core.Segment, 0, len(segments))
	for _, s := range segments {
		if !Valid(s) {
			continue
		}
		c := s.Clone()
		if n := len(kept); n > 0 {
			// stitch onto the previous kept segment; drop it if that collapses it
			prev := kept[n-1].End()
			c.Points[0], c.Points[1] = prev.X, prev.Y
			if !Valid(c) {
				continue
			}
		}
		kept = append(kept, c)
	}

	// merge
	merged := make([]core.Segment, 0, len(kept))
	for _, s := range kept {
		if n := len(merged); n > 0 && merged[n-1].Type == s.Type {
			merged[n-1].Points = append(merged[n-1].Points, s.Points[2:]...)
			continue
		}
		merged = append(merged, s)
	}

	return merged
}

// BuildPoints flattens segments into an arrow's point list. Shared joints are
// emitted once and invalid segments are skipped.
func BuildPoints(segments []core.Segment) []float64 {
	points := []float64{}
	for _, s := range segments {
		if !Valid(s) {
			continue
		}
		if len(points) == 0 {
			points = append(points, s.Points...)
			continue
		}
		points = append(points, s.Points[2:]...)
	}
	return points
}

// FromPoints synthesizes a single-style segment list from consecutive pairs of a polyline.
// Used when an arrow predates segment support.
func FromPoints(points []float64, style core.SegmentStyle) []core.Segment {
	if len(points) < 4 || len(points)%2 != 0 {
		return nil
	}
	return []core.Segment{{Points: append([]float64(nil), points...), Type: style}}
}

func cloneAll(segments []core.Segment) []core.Segment {
	out := make([]core.Segment, len(segments))
	for i, s := range segments {
		out[i] = s.Clone()
	}
	return out
}
