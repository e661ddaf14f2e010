// pkg/core/types.go
package core

// Point is a position in field-local coordinates (origin top-left)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from o to p
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// SegmentStyle is the stroke style of one arrow sub-run
type SegmentStyle string

const (
	StyleStraight SegmentStyle = "straight"
	StyleDashed   SegmentStyle = "dashed"
	StyleZigzag   SegmentStyle = "zigzag"
)

// Valid reports whether s is a known style
func (s SegmentStyle) Valid() bool {
	switch s {
	case StyleStraight, StyleDashed, StyleZigzag:
		return true
	}
	return false
}

// HeadStyle is the terminator drawn at an arrow's final point
type HeadStyle string

const (
	HeadNormal  HeadStyle = "normal"
	HeadTShaped HeadStyle = "t-shaped"
	HeadNone    HeadStyle = "none"
)

// Valid reports whether h is a known head style
func (h HeadStyle) Valid() bool {
	switch h {
	case HeadNormal, HeadTShaped, HeadNone:
		return true
	}
	return false
}

// Team identifies which zone a player belongs to
type Team string

const (
	TeamOffense Team = "offense"
	TeamDefense Team = "defense"
)

// Valid reports whether t is a known team
func (t Team) Valid() bool {
	return t == TeamOffense || t == TeamDefense
}

// GuideType is the orientation of a snap guide
type GuideType string

const GuideHorizontal GuideType = "horizontal"

// Guide describes a reference line the host may draw while snapping
type Guide struct {
	Type             GuideType `json:"type"`
	Position         float64   `json:"position"`
	RelatedEntityIDs []string  `json:"relatedEntityIds"`
}
