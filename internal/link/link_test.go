package link

import (
	"testing"
	"time"

	"github.com/routeboard/engine/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anchoredArrow() core.Arrow {
	return core.Arrow{
		ID:               "a1",
		Points:           []float64{100, 100, 200, 100, 200, 200},
		PrimaryType:      core.StyleStraight,
		AnchoredPlayerID: "p1",
		Segments: []core.Segment{
			{Points: []float64{100, 100, 200, 100}, Type: core.StyleStraight},
			{Points: []float64{200, 100, 200, 200}, Type: core.StyleDashed},
		},
	}
}

func TestPropagate_AnchorSync(t *testing.T) {
	arrows := []core.Arrow{anchoredArrow(), {ID: "free", Points: []float64{0, 0, 10, 10}}}

	out := Propagate(arrows, Move{PlayerID: "p1", From: core.Point{X: 100, Y: 100}, To: core.Point{X: 150, Y: 130}})
	require.Len(t, out, 2)

	a := out[0]
	assert.Equal(t, []float64{150, 130, 250, 130, 250, 230}, a.Points)
	assert.Equal(t, []float64{150, 130, 250, 130}, a.Segments[0].Points)
	assert.Equal(t, []float64{250, 130, 250, 230}, a.Segments[1].Points)
	assert.Equal(t, arrows[1], out[1])

	// input untouched
	assert.Equal(t, []float64{100, 100, 200, 100, 200, 200}, arrows[0].Points)
	assert.Equal(t, []float64{100, 100, 200, 100}, arrows[0].Segments[0].Points)
}

func TestPropagate_PinsStartAgainstDrift(t *testing.T) {
	arrows := []core.Arrow{anchoredArrow()}
	arrows[0].Points[0] = 100.0000001

	out := Propagate(arrows, Move{PlayerID: "p1", From: core.Point{X: 100, Y: 100}, To: core.Point{X: 110.3, Y: 90.7}})
	assert.Equal(t, 110.3, out[0].Points[0])
	assert.Equal(t, 90.7, out[0].Points[1])
	assert.Equal(t, 110.3, out[0].Segments[0].Points[0])
}

func TestPropagate_GroupMove(t *testing.T) {
	second := anchoredArrow()
	second.ID = "a2"
	second.AnchoredPlayerID = "p2"
	second.Segments = nil
	arrows := []core.Arrow{anchoredArrow(), second}

	out := Propagate(arrows,
		Move{PlayerID: "p1", From: core.Point{X: 100, Y: 100}, To: core.Point{X: 110, Y: 100}},
		Move{PlayerID: "p2", From: core.Point{X: 100, Y: 100}, To: core.Point{X: 100, Y: 80}},
	)
	assert.Equal(t, []float64{110, 100, 210, 100, 210, 200}, out[0].Points)
	assert.Equal(t, []float64{100, 80, 200, 80, 200, 180}, out[1].Points)
}

func TestPropagate_UnrelatedMove(t *testing.T) {
	arrows := []core.Arrow{anchoredArrow()}
	out := Propagate(arrows, Move{PlayerID: "other", To: core.Point{X: 1, Y: 1}})
	assert.Equal(t, arrows, out)
}

func TestPruneAnchored(t *testing.T) {
	free := core.Arrow{ID: "free", Points: []float64{0, 0, 10, 10}}
	arrows := []core.Arrow{anchoredArrow(), free}

	assert.Equal(t, []core.Arrow{free}, PruneAnchored(arrows, "p1"))
	assert.Len(t, PruneAnchored(arrows, "p9"), 2)
	assert.Len(t, PruneAnchored(arrows, ""), 2)
}

func TestSyncAnchors(t *testing.T) {
	arrows := []core.Arrow{anchoredArrow()}
	players := []core.Player{{ID: "p1", X: 90, Y: 110}}

	out := SyncAnchors(arrows, players)
	assert.Equal(t, []float64{90, 110, 190, 110, 190, 210}, out[0].Points)

	missing := SyncAnchors(arrows, nil)
	assert.Equal(t, arrows, missing)
}

func TestMoveHandle_Unsegmented(t *testing.T) {
	a := core.Arrow{ID: "a", Points: []float64{0, 0, 10, 10, 20, 0}}

	moved := MoveHandle(a, 1, core.Point{X: 15, Y: 30})
	assert.Equal(t, []float64{0, 0, 15, 30, 20, 0}, moved.Points)
	assert.Equal(t, []float64{0, 0, 10, 10, 20, 0}, a.Points)
}

func TestMoveHandle_SharedJoint(t *testing.T) {
	a := anchoredArrow()

	moved := MoveHandle(a, 1, core.Point{X: 220, Y: 90})
	assert.Equal(t, []float64{100, 100, 220, 90}, moved.Segments[0].Points)
	assert.Equal(t, []float64{220, 90, 200, 200}, moved.Segments[1].Points)
	assert.Equal(t, []float64{100, 100, 220, 90, 200, 200}, moved.Points)
}

func TestMoveHandle_LastVertex(t *testing.T) {
	moved := MoveHandle(anchoredArrow(), 2, core.Point{X: 250, Y: 250})
	assert.Equal(t, []float64{200, 100, 250, 250}, moved.Segments[1].Points)
	assert.Equal(t, []float64{100, 100, 200, 100, 250, 250}, moved.Points)
}

func TestMoveHandle_AnchoredStartIsFixed(t *testing.T) {
	a := anchoredArrow()
	assert.Equal(t, a, MoveHandle(a, 0, core.Point{X: 0, Y: 0}))

	a.AnchoredPlayerID = ""
	moved := MoveHandle(a, 0, core.Point{X: 0, Y: 0})
	assert.Equal(t, []float64{0, 0, 200, 100}, moved.Segments[0].Points)
}

func TestMoveHandle_OutOfRange(t *testing.T) {
	a := anchoredArrow()
	assert.Equal(t, a, MoveHandle(a, 3, core.Point{}))
	assert.Equal(t, a, MoveHandle(a, -1, core.Point{}))
}

func TestThrottle(t *testing.T) {
	th := NewThrottle()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, th.Allow(start))
	assert.False(t, th.Allow(start.Add(10*time.Millisecond)))
	assert.True(t, th.Allow(start.Add(17*time.Millisecond)))
	assert.False(t, th.Allow(start.Add(20*time.Millisecond)))

	th.Reset()
	assert.True(t, th.Allow(start.Add(21*time.Millisecond)))
}
