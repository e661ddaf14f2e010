package parser

import "github.com/routeboard/engine/pkg/core"

// ClickArgs is a pointer click, optionally on a player
type ClickArgs struct {
	At       core.Point
	PlayerID string
}

// SnapArgs toggles snapping. A zero Tolerance keeps the current one.
type SnapArgs struct {
	Enabled   bool
	Tolerance float64
}

// PlayerSpec describes a player to place
type PlayerSpec struct {
	Team  core.Team
	At    core.Point
	Size  float64
	Shape string
}

// PlayerPosition is a player id with a target position
type PlayerPosition struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Point returns the target position
func (p PlayerPosition) Point() core.Point {
	return core.Point{X: p.X, Y: p.Y}
}

// HandleArgs moves one vertex of an arrow
type HandleArgs struct {
	ArrowID string
	Index   int
	At      core.Point
}

// ArrowImport is a finished arrow given as a polyline, used for legacy imports
type ArrowImport struct {
	Points   []float64
	Style    core.SegmentStyle
	Head     core.HeadStyle
	PlayerID string
}
