package convert

import (
	"testing"
	"time"

	"github.com/routeboard/engine/internal/model"
	"github.com/routeboard/engine/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func sampleDiagram() core.Diagram {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return core.Diagram{
		ID:        "d-1",
		Name:      "Trips right",
		Field:     core.Field{Width: 800, Height: 600, Color: "#2e7d32", LineColor: "#ffffff"},
		Center:    core.Center{ID: "center", X: 400, Y: 300},
		CreatedAt: now,
		UpdatedAt: now,
		Players: []core.Player{
			{ID: "p1", X: 100, Y: 420, Shape: "circle", Team: core.TeamOffense, Size: 20, Color: "#fff", Label: "X"},
			{ID: "p2", X: 200, Y: 250, Shape: "square", Team: core.TeamDefense, Size: 24, OrientationFlipped: true},
		},
		Arrows: []core.Arrow{
			{
				ID:               "a1",
				Points:           []float64{100, 420, 100, 300, 200, 300},
				PrimaryType:      core.StyleStraight,
				HeadStyle:        core.HeadNormal,
				Color:            "#000000",
				StrokeWidth:      2,
				AnchoredPlayerID: "p1",
				Segments: []core.Segment{
					{Points: []float64{100, 420, 100, 300}, Type: core.StyleStraight},
					{Points: []float64{100, 300, 200, 300}, Type: core.StyleZigzag},
				},
			},
			{ID: "a2", Points: []float64{0, 0, 50, 50}, PrimaryType: core.StyleDashed, HeadStyle: core.HeadTShaped},
		},
		Texts: []core.Text{{ID: "t1", X: 10, Y: 20, Content: "Go", FontSize: 14, Color: "#111"}},
	}
}

func TestPointToGeom(t *testing.T) {
	pt := pointToGeom(core.Point{X: 100.5, Y: 200.5})
	xy, ok := pt.XY()
	require.True(t, ok)
	assert.Equal(t, 100.5, xy.X)
	assert.Equal(t, 200.5, xy.Y)
}

func TestSegmentsToJSON_Empty(t *testing.T) {
	assert.Equal(t, datatypes.JSON("[]"), segmentsToJSON(nil))
}

func TestJSONToSegments(t *testing.T) {
	assert.Nil(t, jsonToSegments(nil))
	assert.Nil(t, jsonToSegments(datatypes.JSON("[]")))
	assert.Nil(t, jsonToSegments(datatypes.JSON("{broken")))

	segs := jsonToSegments(datatypes.JSON(`[{"points":[1,2,3,4],"type":"dashed"}]`))
	require.Len(t, segs, 1)
	assert.Equal(t, []float64{1, 2, 3, 4}, segs[0].Points)
	assert.Equal(t, core.StyleDashed, segs[0].Type)
}

func TestCoreToDiagram(t *testing.T) {
	d := sampleDiagram()
	m := CoreToDiagram(d)

	assert.Equal(t, "d-1", m.ID)
	assert.Equal(t, 800.0, m.FieldWidth)
	assert.Equal(t, "center", m.CenterID)
	require.Len(t, m.Players, 2)
	assert.Equal(t, "p2", m.Players[1].PlayerID)
	assert.Equal(t, 1, m.Players[1].Ordinal)
	assert.Equal(t, "d-1", m.Players[1].DiagramID)
	require.Len(t, m.Arrows, 2)
	assert.Equal(t, "p1", m.Arrows[0].AnchoredPlayerID)
	assert.Equal(t, 3, m.Arrows[0].Polyline.Coordinates().Length())
	assert.JSONEq(t, `[{"points":[100,420,100,300],"type":"straight"},{"points":[100,300,200,300],"type":"zigzag"}]`,
		string(m.Arrows[0].Segments))
	require.Len(t, m.Texts, 1)
	assert.Equal(t, "Go", m.Texts[0].Content)
}

// Round-trip: Core → GORM → Core
func TestDiagramRoundTrip(t *testing.T) {
	original := sampleDiagram()
	result := DiagramToCore(CoreToDiagram(original))
	assert.Equal(t, original, result)
}

func TestDiagramToCore_OrdersByOrdinal(t *testing.T) {
	m := model.Diagram{
		ID: "d",
		Players: []model.Player{
			{PlayerID: "second", Ordinal: 1},
			{PlayerID: "first", Ordinal: 0},
		},
		Arrows: []model.Arrow{
			{ArrowID: "b", Ordinal: 1},
			{ArrowID: "a", Ordinal: 0},
		},
	}
	d := DiagramToCore(m)
	assert.Equal(t, "first", d.Players[0].ID)
	assert.Equal(t, "second", d.Players[1].ID)
	assert.Equal(t, "a", d.Arrows[0].ID)
	assert.Nil(t, d.Arrows[0].Points)
	assert.Nil(t, d.Arrows[0].Segments)
	assert.Empty(t, d.Texts)
}

func TestDiagramToSummary(t *testing.T) {
	now := time.Now()
	s := DiagramToSummary(model.Diagram{ID: "x", Name: "n", UpdatedAt: now}, 3, 2)
	assert.Equal(t, core.DiagramSummary{ID: "x", Name: "n", Players: 3, Arrows: 2, UpdatedAt: now}, s)
}
