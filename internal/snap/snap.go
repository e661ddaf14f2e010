// Package snap pulls a dragged player onto the line just outside the center line.
package snap

import (
	"math"

	"github.com/routeboard/engine/internal/zone"
	"github.com/routeboard/engine/pkg/core"
)

// DefaultTolerance is the distance within which a point snaps
const DefaultTolerance = 15.0

// Context is the live diagram state a snap is computed against
type Context struct {
	Center core.Center
	Field  core.Field
}

// Result is the snapped point and the guides to draw for it
type Result struct {
	Point  core.Point
	Guides []core.Guide
}

// Engine holds the snap toggle and tolerance
type Engine struct {
	Enabled   bool
	Tolerance float64
}

// NewEngine returns a disabled engine with the default tolerance
func NewEngine() Engine {
	return Engine{Tolerance: DefaultTolerance}
}

// Target returns the snap line for a team: Buffer units outside the nominal center
// line, which is also the edge of the team's legal band. Flipped defense keeps its
// own fixed line below the band-2 line.
func Target(team core.Team, ctx Context) float64 {
	h := ctx.Field.Height
	flipped := zone.IsFieldFlipped(ctx.Center.Y, h)
	c := zone.CenterLine(flipped, h)
	switch {
	case team == core.TeamOffense && !flipped:
		return c + zone.Buffer
	case team == core.TeamOffense:
		return c - zone.Buffer
	case !flipped:
		return c - zone.Buffer
	default:
		return zone.BandLine(2, h) + zone.Buffer
	}
}

// Snap moves p onto the team's target line when it is within tolerance.
// A nil team or a disabled engine leaves p untouched.
func (e Engine) Snap(p core.Point, team *core.Team, ctx Context) Result {
	if !e.Enabled || team == nil {
		return Result{Point: p}
	}

	target := Target(*team, ctx)
	if math.Abs(p.Y-target) > e.Tolerance {
		return Result{Point: p}
	}

	return Result{
		Point: core.Point{X: p.X, Y: target},
		Guides: []core.Guide{{
			Type:             core.GuideHorizontal,
			Position:         target,
			RelatedEntityIDs: []string{ctx.Center.ID},
		}},
	}
}
