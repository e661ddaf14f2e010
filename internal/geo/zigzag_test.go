package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandZigzag_EndpointFidelity(t *testing.T) {
	inputs := [][]float64{
		{0, 0, 100, 0},
		{0, 0, 100, 37.5, 13, 250},
		{5.5, 5.5, 6, 6},
		{300, 300, 299, 12, 0.25, 0.75},
		{0, 0, 11.99, 0},
	}

	for _, in := range inputs {
		out := ExpandZigzag(in)
		require.GreaterOrEqual(t, len(out), 4)
		assert.Equal(t, in[0], out[0])
		assert.Equal(t, in[1], out[1])
		assert.Equal(t, in[len(in)-2], out[len(out)-2])
		assert.Equal(t, in[len(in)-1], out[len(out)-1])
	}
}

func TestExpandZigzag_ShortSegmentKeepsEndpoints(t *testing.T) {
	out := ExpandZigzag([]float64{0, 0, 10, 0})
	assert.Equal(t, []float64{0, 0, 10, 0}, out)
}

func TestExpandZigzag_AlternatesStartingUp(t *testing.T) {
	out := ExpandZigzag([]float64{0, 0, 50, 0})

	// zig points at x = 12, 24, 36, 48 then the true endpoint
	require.Equal(t, 2+4*2+2, len(out))
	assert.InDelta(t, 12, out[2], 1e-9)
	assert.InDelta(t, -ZigzagAmplitude, out[3], 1e-9, "first offset goes up")
	assert.InDelta(t, ZigzagAmplitude, out[5], 1e-9)
	assert.InDelta(t, -ZigzagAmplitude, out[7], 1e-9)
	assert.InDelta(t, ZigzagAmplitude, out[9], 1e-9)
	assert.Equal(t, []float64{50, 0}, out[10:])
}

func TestExpandZigzag_DegenerateInput(t *testing.T) {
	assert.Equal(t, []float64{1, 2}, ExpandZigzag([]float64{1, 2}))
	assert.Equal(t, []float64{1, 2, 3}, ExpandZigzag([]float64{1, 2, 3}))
	assert.Empty(t, ExpandZigzag(nil))
}

func TestExpandZigzag_DoesNotMutateInput(t *testing.T) {
	in := []float64{0, 0, 100, 100}
	ExpandZigzag(in)
	assert.Equal(t, []float64{0, 0, 100, 100}, in)
}
