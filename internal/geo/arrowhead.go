package geo

import (
	"math"

	"github.com/routeboard/engine/pkg/core"
)

const (
	// ArrowheadLength is the length of each wedge side and of the T bar
	ArrowheadLength = 15.0
	// ArrowheadSpread is the half-angle of the wedge
	ArrowheadSpread = math.Pi / 6
)

// BuildArrowhead returns the head polyline at tip, pointing away from from.
// A normal head is [left, tip, right]; a T head is the bar's two ends.
func BuildArrowhead(tip, from core.Point, style core.HeadStyle) []float64 {
	if style == core.HeadNone || Distance(from, tip) == 0 {
		return nil
	}

	theta := Angle(from, tip)

	switch style {
	case core.HeadTShaped:
		half := ArrowheadLength / 2
		px, py := -math.Sin(theta), math.Cos(theta)
		return []float64{
			tip.X + px*half, tip.Y + py*half,
			tip.X - px*half, tip.Y - py*half,
		}
	case core.HeadNormal:
		left := theta - ArrowheadSpread
		right := theta + ArrowheadSpread
		return []float64{
			tip.X - ArrowheadLength*math.Cos(left), tip.Y - ArrowheadLength*math.Sin(left),
			tip.X, tip.Y,
			tip.X - ArrowheadLength*math.Cos(right), tip.Y - ArrowheadLength*math.Sin(right),
		}
	}
	return nil
}

// LastDirection finds the last two distinct pairs of a polyline.
// Pairs closer than MinSegmentLength to the tip are skipped.
func LastDirection(points []float64) (from, tip core.Point, ok bool) {
	n := Pairs(points)
	if n < 2 {
		return core.Point{}, core.Point{}, false
	}
	tip = PairAt(points, n-1)
	for i := n - 2; i >= 0; i-- {
		p := PairAt(points, i)
		if Distance(p, tip) >= MinSegmentLength {
			return p, tip, true
		}
	}
	return core.Point{}, core.Point{}, false
}

// ArrowheadFor computes the head of a finished arrow.
// The direction comes from the final segment before any zigzag expansion.
func ArrowheadFor(a core.Arrow) []float64 {
	if a.HeadStyle == core.HeadNone || PolylineLength(a.Points) < MinArrowheadLength {
		return nil
	}

	direction := a.Points
	if n := len(a.Segments); n > 0 {
		direction = a.Segments[n-1].Points
	}

	from, tip, ok := LastDirection(direction)
	if !ok {
		return nil
	}
	return BuildArrowhead(tip, from, a.HeadStyle)
}
