package geo

import (
	"math"
	"testing"

	"github.com/routeboard/engine/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(core.Point{X: 0, Y: 0}, core.Point{X: 3, Y: 4}))
	assert.Equal(t, 0.0, Distance(core.Point{X: 7, Y: 7}, core.Point{X: 7, Y: 7}))
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, 0, Angle(core.Point{}, core.Point{X: 10}), 1e-9)
	assert.InDelta(t, math.Pi/2, Angle(core.Point{}, core.Point{Y: 10}), 1e-9)
	assert.InDelta(t, math.Pi, Angle(core.Point{}, core.Point{X: -10}), 1e-9)
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite([]float64{0, 1, 2}))
	assert.False(t, Finite([]float64{0, math.NaN()}))
	assert.False(t, Finite([]float64{math.Inf(1), 0}))
}

func TestPolylineLength(t *testing.T) {
	assert.InDelta(t, 20.0, PolylineLength([]float64{0, 0, 10, 0, 10, 10}), 1e-9)
	assert.Equal(t, 0.0, PolylineLength([]float64{1, 1}))
}

func TestTranslate(t *testing.T) {
	in := []float64{0, 0, 10, 5}
	out := Translate(in, core.Point{X: 50, Y: 30})
	assert.Equal(t, []float64{50, 30, 60, 35}, out)
	assert.Equal(t, []float64{0, 0, 10, 5}, in, "input untouched")
}

func TestPointFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    core.Point
		wantErr bool
	}{
		{"plain", "100,200", core.Point{X: 100, Y: 200}, false},
		{"bracketed", "[1.5, 2.25]", core.Point{X: 1.5, Y: 2.25}, false},
		{"extra component", "1,2,3", core.Point{}, true},
		{"single value", "100", core.Point{}, true},
		{"not a number", "a,b", core.Point{}, true},
		{"nan", "NaN,1", core.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PointFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCoordinates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
