// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"encoding/json"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/routeboard/engine/internal/geo"
	"github.com/routeboard/engine/internal/model"
	"github.com/routeboard/engine/pkg/core"
	"gorm.io/datatypes"
)

// pointToGeom converts a core.Point to a geom.Point
func pointToGeom(p core.Point) geom.Point {
	return geom.NewPoint(geom.Coordinates{XY: geom.XY{X: p.X, Y: p.Y}, Type: geom.DimXY})
}

// segmentsToJSON converts arrow segments to datatypes.JSON for DB storage.
func segmentsToJSON(segments []core.Segment) datatypes.JSON {
	if len(segments) == 0 {
		return datatypes.JSON("[]")
	}
	data, err := json.Marshal(segments)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// CoreToDiagram converts a core.Diagram to a GORM model.Diagram with its children.
func CoreToDiagram(d core.Diagram) model.Diagram {
	out := model.Diagram{
		ID:             d.ID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Name:           d.Name,
		FieldWidth:     d.Field.Width,
		FieldHeight:    d.Field.Height,
		FieldColor:     d.Field.Color,
		FieldLineColor: d.Field.LineColor,
		CenterID:       d.Center.ID,
		CenterPosition: pointToGeom(d.Center.Position()),
	}

	out.Players = make([]model.Player, 0, len(d.Players))
	for i, p := range d.Players {
		out.Players = append(out.Players, CoreToPlayer(d.ID, i, p))
	}
	out.Arrows = make([]model.Arrow, 0, len(d.Arrows))
	for i, a := range d.Arrows {
		out.Arrows = append(out.Arrows, CoreToArrow(d.ID, i, a))
	}
	out.Texts = make([]model.Text, 0, len(d.Texts))
	for i, t := range d.Texts {
		out.Texts = append(out.Texts, CoreToText(d.ID, i, t))
	}
	return out
}

// CoreToPlayer converts a core.Player to a GORM model.Player.
// core.Player.ID maps to GORM Player.PlayerID.
func CoreToPlayer(diagramID string, ordinal int, p core.Player) model.Player {
	return model.Player{
		DiagramID:          diagramID,
		Ordinal:            ordinal,
		PlayerID:           p.ID,
		Position:           pointToGeom(p.Position()),
		Shape:              p.Shape,
		Team:               string(p.Team),
		Size:               p.Size,
		OrientationFlipped: p.OrientationFlipped,
		Color:              p.Color,
		Label:              p.Label,
	}
}

// CoreToArrow converts a core.Arrow to a GORM model.Arrow.
// core.Arrow.ID maps to GORM Arrow.ArrowID.
func CoreToArrow(diagramID string, ordinal int, a core.Arrow) model.Arrow {
	return model.Arrow{
		DiagramID:        diagramID,
		Ordinal:          ordinal,
		ArrowID:          a.ID,
		Polyline:         geo.ToLineString(a.Points),
		PrimaryType:      string(a.PrimaryType),
		HeadStyle:        string(a.HeadStyle),
		Color:            a.Color,
		StrokeWidth:      a.StrokeWidth,
		AnchoredPlayerID: a.AnchoredPlayerID,
		Segments:         segmentsToJSON(a.Segments),
	}
}

// CoreToText converts a core.Text to a GORM model.Text.
func CoreToText(diagramID string, ordinal int, t core.Text) model.Text {
	return model.Text{
		DiagramID: diagramID,
		Ordinal:   ordinal,
		TextID:    t.ID,
		Position:  pointToGeom(core.Point{X: t.X, Y: t.Y}),
		Content:   t.Content,
		FontSize:  t.FontSize,
		Color:     t.Color,
	}
}
