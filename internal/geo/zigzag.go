package geo

import "math"

const (
	// ZigzagStep is the distance walked along the line between two zig points
	ZigzagStep = 12.0
	// ZigzagAmplitude is the perpendicular offset of each zig point
	ZigzagAmplitude = 8.0
)

// ExpandZigzag expands a polyline into its zigzag rendering with the default step and amplitude.
func ExpandZigzag(points []float64) []float64 {
	return ExpandZigzagWith(points, ZigzagStep, ZigzagAmplitude)
}

// ExpandZigzagWith walks each pair of the polyline in step-sized increments, offsetting
// alternately up and down by amplitude. The result always starts at the first input pair
// and ends exactly at the last one. Pairs shorter than one step keep only their endpoints.
func ExpandZigzagWith(points []float64, step, amplitude float64) []float64 {
	if len(points) < 4 || len(points)%2 != 0 || step <= 0 {
		return append([]float64(nil), points...)
	}

	out := make([]float64, 0, len(points)*4)
	out = append(out, points[0], points[1])

	for i := 1; i < Pairs(points); i++ {
		a, b := PairAt(points, i-1), PairAt(points, i)
		length := Distance(a, b)
		if length >= step && !math.IsNaN(length) {
			ux, uy := (b.X-a.X)/length, (b.Y-a.Y)/length
			// screen Y grows downward, so (uy, -ux) points "up" for a left-to-right line
			nx, ny := uy, -ux
			sign := 1.0
			for d := step; d < length; d += step {
				out = append(out,
					a.X+ux*d+nx*amplitude*sign,
					a.Y+uy*d+ny*amplitude*sign,
				)
				sign = -sign
			}
		}
		out = append(out, b.X, b.Y)
	}

	return out
}
