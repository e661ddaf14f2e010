package convert

import (
	"encoding/json"
	"sort"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/routeboard/engine/internal/geo"
	"github.com/routeboard/engine/internal/model"
	"github.com/routeboard/engine/pkg/core"
	"gorm.io/datatypes"
)

// geomToPoint converts a geom.Point to a core.Point. Empty points map to the origin.
func geomToPoint(p geom.Point) core.Point {
	xy, ok := p.XY()
	if !ok {
		return core.Point{}
	}
	return core.Point{X: xy.X, Y: xy.Y}
}

// jsonToSegments decodes stored segments. Malformed or empty JSON yields nil.
func jsonToSegments(data datatypes.JSON) []core.Segment {
	if len(data) == 0 {
		return nil
	}
	var segments []core.Segment
	if err := json.Unmarshal(data, &segments); err != nil || len(segments) == 0 {
		return nil
	}
	return segments
}

// DiagramToCore converts a GORM model.Diagram and its loaded children to a core.Diagram.
// Children are ordered by their stored ordinal.
func DiagramToCore(d model.Diagram) core.Diagram {
	center := geomToPoint(d.CenterPosition)
	out := core.Diagram{
		ID:   d.ID,
		Name: d.Name,
		Field: core.Field{
			Width:     d.FieldWidth,
			Height:    d.FieldHeight,
			Color:     d.FieldColor,
			LineColor: d.FieldLineColor,
		},
		Center:    core.Center{ID: d.CenterID, X: center.X, Y: center.Y},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	players := append([]model.Player(nil), d.Players...)
	sort.SliceStable(players, func(i, j int) bool { return players[i].Ordinal < players[j].Ordinal })
	out.Players = make([]core.Player, 0, len(players))
	for _, p := range players {
		out.Players = append(out.Players, PlayerToCore(p))
	}

	arrows := append([]model.Arrow(nil), d.Arrows...)
	sort.SliceStable(arrows, func(i, j int) bool { return arrows[i].Ordinal < arrows[j].Ordinal })
	out.Arrows = make([]core.Arrow, 0, len(arrows))
	for _, a := range arrows {
		out.Arrows = append(out.Arrows, ArrowToCore(a))
	}

	texts := append([]model.Text(nil), d.Texts...)
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].Ordinal < texts[j].Ordinal })
	out.Texts = make([]core.Text, 0, len(texts))
	for _, t := range texts {
		out.Texts = append(out.Texts, TextToCore(t))
	}
	return out
}

// PlayerToCore converts a GORM model.Player to a core.Player.
func PlayerToCore(p model.Player) core.Player {
	pos := geomToPoint(p.Position)
	return core.Player{
		ID:                 p.PlayerID,
		X:                  pos.X,
		Y:                  pos.Y,
		Shape:              p.Shape,
		Team:               core.Team(p.Team),
		Size:               p.Size,
		OrientationFlipped: p.OrientationFlipped,
		Color:              p.Color,
		Label:              p.Label,
	}
}

// ArrowToCore converts a GORM model.Arrow to a core.Arrow.
func ArrowToCore(a model.Arrow) core.Arrow {
	return core.Arrow{
		ID:               a.ArrowID,
		Points:           geo.FromLineString(a.Polyline),
		PrimaryType:      core.SegmentStyle(a.PrimaryType),
		HeadStyle:        core.HeadStyle(a.HeadStyle),
		Color:            a.Color,
		StrokeWidth:      a.StrokeWidth,
		AnchoredPlayerID: a.AnchoredPlayerID,
		Segments:         jsonToSegments(a.Segments),
	}
}

// TextToCore converts a GORM model.Text to a core.Text.
func TextToCore(t model.Text) core.Text {
	pos := geomToPoint(t.Position)
	return core.Text{
		ID:       t.TextID,
		X:        pos.X,
		Y:        pos.Y,
		Content:  t.Content,
		FontSize: t.FontSize,
		Color:    t.Color,
	}
}

// DiagramToSummary builds the listing view of a stored diagram.
func DiagramToSummary(d model.Diagram, players, arrows int) core.DiagramSummary {
	return core.DiagramSummary{
		ID:        d.ID,
		Name:      d.Name,
		Players:   players,
		Arrows:    arrows,
		UpdatedAt: d.UpdatedAt,
	}
}
