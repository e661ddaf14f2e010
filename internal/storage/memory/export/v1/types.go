// Package v1 contains the v1 export format for route diagrams.
// Alongside the editable model it carries render-ready geometry so a viewer needs no engine.
package v1

import (
	"time"

	"github.com/routeboard/engine/pkg/core"
)

// Version is written to every v1 export
const Version = 1

// Export is the root JSON structure for v1 format
type Export struct {
	Version   int           `json:"version"`
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Field     Field         `json:"field"`
	Center    Center        `json:"center"`
	Players   []core.Player `json:"players"`
	Arrows    []Arrow       `json:"arrows"`
	Texts     []core.Text   `json:"texts"`
}

// Field is the drawing surface plus its band line positions
type Field struct {
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Color     string    `json:"color"`
	LineColor string    `json:"lineColor"`
	Bands     []float64 `json:"bands"` // y of each band boundary, 1..5
}

// Center is the center entity and the orientation it implies
type Center struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Flipped bool    `json:"flipped"`
}

// Arrow is an editable arrow plus its rendered runs and head
type Arrow struct {
	core.Arrow
	Runs []Run     `json:"runs"`
	Head []float64 `json:"head,omitempty"`
}

// Run is one styled stretch of display points. Zigzag runs are already expanded.
type Run struct {
	Type   core.SegmentStyle `json:"type"`
	Points []float64         `json:"points"`
}
