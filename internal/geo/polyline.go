package geo

import (
	"encoding/json"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
)

// ParsePolyline parses a JSON array of coordinates into a flat point list.
// Input format: "[[x1,y1],[x2,y2],...]"
func ParsePolyline(input string) ([]float64, error) {
	var coords [][]float64
	if err := json.Unmarshal([]byte(input), &coords); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolyline, err)
	}

	if len(coords) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidPolyline, len(coords))
	}

	flat := make([]float64, 0, len(coords)*2)
	for i, coord := range coords {
		if len(coord) < 2 {
			return nil, fmt.Errorf("%w: coordinate %d has insufficient values", ErrInvalidPolyline, i)
		}
		flat = append(flat, coord[0], coord[1])
	}
	if !Finite(flat) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolyline, ErrInvalidCoordinates)
	}

	return flat, nil
}

// ToLineString converts a flat point list into a geom.LineString.
// Lists with fewer than two pairs produce an empty line string.
func ToLineString(points []float64) geom.LineString {
	if len(points) < 4 || len(points)%2 != 0 {
		return geom.LineString{}
	}
	seq := geom.NewSequence(append([]float64(nil), points...), geom.DimXY)
	return geom.NewLineString(seq)
}

// FromLineString flattens a geom.LineString back into [x0,y0,x1,y1,...]
func FromLineString(ls geom.LineString) []float64 {
	if ls.IsEmpty() {
		return nil
	}
	seq := ls.Coordinates()
	out := make([]float64, 0, seq.Length()*2)
	for i := 0; i < seq.Length(); i++ {
		c := seq.Get(i)
		out = append(out, c.X, c.Y)
	}
	return out
}
