// pkg/core/arrow.go
package core

// Segment is one styled sub-run of an arrow.
// Points is a flat [x0,y0,x1,y1,...] list; the first and last pairs are its endpoints.
type Segment struct {
	Points []float64    `json:"points"`
	Type   SegmentStyle `json:"type"`
}

// Clone returns a deep copy of the segment
func (s Segment) Clone() Segment {
	return Segment{Points: append([]float64(nil), s.Points...), Type: s.Type}
}

// Start returns the first coordinate pair
func (s Segment) Start() Point {
	return Point{X: s.Points[0], Y: s.Points[1]}
}

// End returns the last coordinate pair
func (s Segment) End() Point {
	n := len(s.Points)
	return Point{X: s.Points[n-2], Y: s.Points[n-1]}
}

// Arrow is a finished route annotation.
// When Segments is set, Points is derived from them and must not be edited on its own.
type Arrow struct {
	ID               string       `json:"id"`
	Points           []float64    `json:"points"`
	PrimaryType      SegmentStyle `json:"type"` // style at draw start, kept for older readers
	HeadStyle        HeadStyle    `json:"headStyle"`
	Color            string       `json:"color"`
	StrokeWidth      float64      `json:"strokeWidth"`
	AnchoredPlayerID string       `json:"anchoredPlayerId,omitempty"`
	Segments         []Segment    `json:"segments,omitempty"`
}

// Anchored reports whether the arrow's start tracks a player
func (a Arrow) Anchored() bool {
	return a.AnchoredPlayerID != ""
}

// Clone returns a deep copy of the arrow
func (a Arrow) Clone() Arrow {
	out := a
	out.Points = append([]float64(nil), a.Points...)
	if a.Segments != nil {
		out.Segments = make([]Segment, len(a.Segments))
		for i, s := range a.Segments {
			out.Segments[i] = s.Clone()
		}
	}
	return out
}
