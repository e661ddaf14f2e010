// Package geo holds the pure geometry used by arrows: distances, zigzag expansion,
// arrowheads and conversion to simplefeatures line strings.
package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/routeboard/engine/pkg/core"
)

const (
	// MinSegmentLength is the endpoint distance below which a segment counts as zero-length
	MinSegmentLength = 1.0
	// MinArrowheadLength is the rendered length below which no arrowhead is drawn
	MinArrowheadLength = 5.0
)

var (
	// ErrInvalidCoordinates is returned when the coordinates are invalid
	ErrInvalidCoordinates = errors.New("invalid coordinates provided")
	// ErrInvalidPolyline is returned when a polyline cannot be parsed
	ErrInvalidPolyline = errors.New("invalid polyline")
)

// Distance returns the Euclidean distance between a and b
func Distance(a, b core.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Angle returns the direction from a to b in radians
func Angle(a, b core.Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// PairAt returns the i-th coordinate pair of a flat point list
func PairAt(points []float64, i int) core.Point {
	return core.Point{X: points[2*i], Y: points[2*i+1]}
}

// Pairs returns the number of coordinate pairs in a flat point list
func Pairs(points []float64) int {
	return len(points) / 2
}

// Finite reports whether every value is a real number
func Finite(points []float64) bool {
	for _, v := range points {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// PolylineLength returns the length along the polyline, 0 for fewer than two pairs
func PolylineLength(points []float64) float64 {
	return ToLineString(points).Length()
}

// Translate returns a copy of points shifted by d
func Translate(points []float64, d core.Point) []float64 {
	out := make([]float64, len(points))
	for i := 0; i+1 < len(points); i += 2 {
		out[i] = points[i] + d.X
		out[i+1] = points[i+1] + d.Y
	}
	return out
}

// PointFromString parses "x,y" or "[x,y]" into a finite point
func PointFromString(coords string) (core.Point, error) {
	split := strings.Split(strings.Trim(strings.TrimSpace(coords), "[]"), ",")
	if len(split) != 2 {
		return core.Point{}, ErrInvalidCoordinates
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(split[0]), 64)
	if err != nil {
		return core.Point{}, ErrInvalidCoordinates
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(split[1]), 64)
	if err != nil {
		return core.Point{}, ErrInvalidCoordinates
	}
	if !Finite([]float64{x, y}) {
		return core.Point{}, ErrInvalidCoordinates
	}
	return core.Point{X: x, Y: y}, nil
}
