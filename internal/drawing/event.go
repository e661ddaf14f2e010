package drawing

import "github.com/routeboard/engine/pkg/core"

// Event is one input to the drawing reducer
type Event interface {
	isEvent()
}

// StartDraw opens a session at the clicked point, anchored when TargetPlayerID names an existing player
type StartDraw struct {
	At             core.Point
	TargetPlayerID string
}

// AddPoint commits a click while drawing
type AddPoint struct {
	At core.Point
}

// Preview follows the pointer while drawing
type Preview struct {
	At core.Point
}

// Undo removes the last committed segment
type Undo struct{}

// Complete finishes the arrow
type Complete struct{}

// Cancel discards the session
type Cancel struct{}

// Tick expires the segment warning once its deadline has passed
type Tick struct{}

func (StartDraw) isEvent() {}
func (AddPoint) isEvent()  {}
func (Preview) isEvent()   {}
func (Undo) isEvent()      {}
func (Complete) isEvent()  {}
func (Cancel) isEvent()    {}
func (Tick) isEvent()      {}
