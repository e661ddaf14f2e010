// Package zone keeps players inside their team's band of the field.
//
// The field is split into Bands equal horizontal bands. The band-4 line is the
// nominal center line when the field is not flipped and the band-2 line when it is.
// Flip state is derived from the center anchor's Y on every call.
package zone

import (
	"math"

	"github.com/routeboard/engine/pkg/core"
)

const (
	// Bands is the number of horizontal bands the field is divided into
	Bands = 6
	// Buffer is the gap kept between a team's band and the center line
	Buffer = 15.0
)

// BandLine returns the Y of the boundary below band index i
func BandLine(i int, height float64) float64 {
	return float64(i) * height / Bands
}

// IsFieldFlipped reports whether the center anchor sits closer to the band-2 line than the band-4 line
func IsFieldFlipped(centerY, height float64) bool {
	return math.Abs(centerY-BandLine(2, height)) < math.Abs(centerY-BandLine(4, height))
}

// CenterLine returns the nominal center line for the flip state
func CenterLine(flipped bool, height float64) float64 {
	if flipped {
		return BandLine(2, height)
	}
	return BandLine(4, height)
}

// LegalYRange returns the inclusive Y range an entity of the given half size may
// occupy. When the band is too narrow for the entity the range collapses onto the
// boundary nearest the center line.
func LegalYRange(team core.Team, flipped bool, height, half float64) (float64, float64) {
	c := CenterLine(flipped, height)

	var lo, hi float64
	switch {
	case !flipped && team == core.TeamOffense:
		lo, hi = c+Buffer, height-half
		if lo > hi {
			hi = lo
		}
	case !flipped:
		lo, hi = math.Max(half, BandLine(2, height)), c-Buffer
		if lo > hi {
			lo = hi
		}
	case team == core.TeamOffense:
		lo, hi = half, c-Buffer
		if lo > hi {
			lo = hi
		}
	default:
		lo, hi = c+Buffer, math.Min(height-half, BandLine(4, height))
		if lo > hi {
			hi = lo
		}
	}
	return lo, hi
}

// Clamp moves p into the field horizontally and into the team's legal range vertically.
// Clamp is idempotent.
func Clamp(p core.Point, team core.Team, flipped bool, field core.Field, half float64) core.Point {
	lo, hi := LegalYRange(team, flipped, field.Height, half)
	return core.Point{
		X: clampRange(p.X, half, field.Width-half),
		Y: clampRange(p.Y, lo, hi),
	}
}

// ClampPlayer clamps a player against its own size and the live center anchor
func ClampPlayer(p core.Point, player core.Player, center core.Center, field core.Field) core.Point {
	flipped := IsFieldFlipped(center.Y, field.Height)
	return Clamp(p, player.Team, flipped, field, player.HalfSize())
}

// ClampToField keeps an arrow vertex inside the field rectangle
func ClampToField(p core.Point, field core.Field) core.Point {
	return core.Point{
		X: clampRange(p.X, 0, field.Width),
		Y: clampRange(p.Y, 0, field.Height),
	}
}

// clampRange clamps v into [lo, hi]; a collapsed range pins v to lo
func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
