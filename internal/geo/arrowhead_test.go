package geo

import (
	"math"
	"testing"

	"github.com/routeboard/engine/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArrowhead_Normal(t *testing.T) {
	tip := core.Point{X: 100, Y: 0}
	head := BuildArrowhead(tip, core.Point{X: 0, Y: 0}, core.HeadNormal)
	require.Len(t, head, 6)

	left := core.Point{X: head[0], Y: head[1]}
	right := core.Point{X: head[4], Y: head[5]}
	assert.Equal(t, tip, core.Point{X: head[2], Y: head[3]})
	assert.InDelta(t, ArrowheadLength, Distance(tip, left), 1e-9)
	assert.InDelta(t, ArrowheadLength, Distance(tip, right), 1e-9)

	// wedge opens backwards, symmetric around the line
	assert.InDelta(t, 100-ArrowheadLength*math.Cos(math.Pi/6), left.X, 1e-9)
	assert.InDelta(t, left.X, right.X, 1e-9)
	assert.InDelta(t, -left.Y, right.Y, 1e-9)
}

func TestBuildArrowhead_TShaped(t *testing.T) {
	head := BuildArrowhead(core.Point{X: 0, Y: 100}, core.Point{X: 0, Y: 0}, core.HeadTShaped)
	require.Len(t, head, 4)

	// line points down, bar is horizontal through the tip
	assert.InDelta(t, 100, head[1], 1e-9)
	assert.InDelta(t, 100, head[3], 1e-9)
	assert.InDelta(t, ArrowheadLength, math.Abs(head[0]-head[2]), 1e-9)
}

func TestBuildArrowhead_None(t *testing.T) {
	assert.Empty(t, BuildArrowhead(core.Point{X: 10}, core.Point{}, core.HeadNone))
}

func TestBuildArrowhead_NoDirection(t *testing.T) {
	assert.Empty(t, BuildArrowhead(core.Point{X: 10}, core.Point{X: 10}, core.HeadNormal))
}

func TestLastDirection_SkipsDuplicateTail(t *testing.T) {
	from, tip, ok := LastDirection([]float64{0, 0, 50, 0, 50.2, 0.2})
	require.True(t, ok)
	assert.Equal(t, core.Point{X: 0, Y: 0}, from)
	assert.Equal(t, core.Point{X: 50.2, Y: 0.2}, tip)
}

func TestLastDirection_NotEnoughPoints(t *testing.T) {
	_, _, ok := LastDirection([]float64{1, 1})
	assert.False(t, ok)

	_, _, ok = LastDirection([]float64{1, 1, 1.1, 1.1})
	assert.False(t, ok)
}

func TestArrowheadFor_UsesPreExpansionDirection(t *testing.T) {
	a := core.Arrow{
		HeadStyle: core.HeadNormal,
		Points:    []float64{0, 0, 100, 0, 100, 100},
		Segments: []core.Segment{
			{Points: []float64{0, 0, 100, 0}, Type: core.StyleStraight},
			{Points: []float64{100, 0, 100, 100}, Type: core.StyleZigzag},
		},
	}

	head := ArrowheadFor(a)
	require.Len(t, head, 6)
	assert.Equal(t, []float64{100, 100}, head[2:4])
	// pointing straight down: both wings above the tip
	assert.Less(t, head[1], 100.0)
	assert.Less(t, head[5], 100.0)
	assert.InDelta(t, 100-(head[0]-100), head[4], 1e-9)
}

func TestArrowheadFor_TooShort(t *testing.T) {
	a := core.Arrow{HeadStyle: core.HeadNormal, Points: []float64{0, 0, 3, 0}}
	assert.Empty(t, ArrowheadFor(a))
}

func TestArrowheadFor_Unsegmented(t *testing.T) {
	a := core.Arrow{HeadStyle: core.HeadTShaped, Points: []float64{0, 0, 30, 0}}
	assert.Len(t, ArrowheadFor(a), 4)
}
