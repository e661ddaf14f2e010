package v1

import (
	"github.com/routeboard/engine/internal/geo"
	"github.com/routeboard/engine/internal/segment"
	"github.com/routeboard/engine/internal/zone"
	"github.com/routeboard/engine/pkg/core"
)

// Options controls render expansion. Zero values fall back to the geo defaults.
type Options struct {
	ZigzagStep      float64
	ZigzagAmplitude float64
}

func (o Options) zigzag(points []float64) []float64 {
	step, amp := o.ZigzagStep, o.ZigzagAmplitude
	if step <= 0 {
		step = geo.ZigzagStep
	}
	if amp <= 0 {
		amp = geo.ZigzagAmplitude
	}
	return geo.ExpandZigzagWith(points, step, amp)
}

// Build creates an Export from a diagram snapshot
func Build(d core.Diagram, opts Options) Export {
	export := Export{
		Version:   Version,
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Field: Field{
			Width:     d.Field.Width,
			Height:    d.Field.Height,
			Color:     d.Field.Color,
			LineColor: d.Field.LineColor,
			Bands:     make([]float64, 0, zone.Bands-1),
		},
		Center: Center{
			ID:      d.Center.ID,
			X:       d.Center.X,
			Y:       d.Center.Y,
			Flipped: zone.IsFieldFlipped(d.Center.Y, d.Field.Height),
		},
		Players: append(make([]core.Player, 0, len(d.Players)), d.Players...),
		Arrows:  make([]Arrow, 0, len(d.Arrows)),
		Texts:   append(make([]core.Text, 0, len(d.Texts)), d.Texts...),
	}

	for i := 1; i < zone.Bands; i++ {
		export.Field.Bands = append(export.Field.Bands, zone.BandLine(i, d.Field.Height))
	}

	for _, a := range d.Arrows {
		export.Arrows = append(export.Arrows, buildArrow(a, opts))
	}

	return export
}

func buildArrow(a core.Arrow, opts Options) Arrow {
	out := Arrow{
		Arrow: a.Clone(),
		Runs:  make([]Run, 0, len(a.Segments)),
		Head:  geo.ArrowheadFor(a),
	}

	if len(a.Segments) == 0 {
		if len(a.Points) >= 4 {
			out.Runs = append(out.Runs, buildRun(a.PrimaryType, a.Points, opts))
		}
		return out
	}

	for _, s := range a.Segments {
		if !segment.Valid(s) {
			continue
		}
		out.Runs = append(out.Runs, buildRun(s.Type, s.Points, opts))
	}
	return out
}

func buildRun(style core.SegmentStyle, points []float64, opts Options) Run {
	if style == core.StyleZigzag {
		return Run{Type: style, Points: opts.zigzag(points)}
	}
	return Run{Type: style, Points: append([]float64(nil), points...)}
}

// ToDiagram recovers the editable diagram from an export. Render data is dropped.
func ToDiagram(e Export) core.Diagram {
	d := core.Diagram{
		ID:   e.ID,
		Name: e.Name,
		Field: core.Field{
			Width:     e.Field.Width,
			Height:    e.Field.Height,
			Color:     e.Field.Color,
			LineColor: e.Field.LineColor,
		},
		Center:    core.Center{ID: e.Center.ID, X: e.Center.X, Y: e.Center.Y},
		Players:   append(make([]core.Player, 0, len(e.Players)), e.Players...),
		Arrows:    make([]core.Arrow, 0, len(e.Arrows)),
		Texts:     append(make([]core.Text, 0, len(e.Texts)), e.Texts...),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	for _, a := range e.Arrows {
		d.Arrows = append(d.Arrows, a.Arrow.Clone())
	}
	return d
}
