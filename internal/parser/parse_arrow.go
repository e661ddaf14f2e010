package parser

import (
	"fmt"

	"github.com/routeboard/engine/internal/geo"
	"github.com/routeboard/engine/pkg/core"
)

// ParseHandle parses :HANDLE:DRAG: and :HANDLE:DROP: args [arrowId, index, x, y]
func (p *Parser) ParseHandle(data []string) (HandleArgs, error) {
	var h HandleArgs

	data, err := clean(":HANDLE:", data, 4)
	if err != nil {
		return h, err
	}

	h.ArrowID = data[0]

	idx, err := parseIntFromFloat(data[1])
	if err != nil || idx < 0 {
		return h, fmt.Errorf("%w: :HANDLE: bad index %q", ErrInvalidArgs, data[1])
	}
	h.Index = int(idx)

	h.At, err = pointAt(":HANDLE:", data, 2)
	if err != nil {
		return h, err
	}

	return h, nil
}

// ParseArrowImport parses :ARROW:NEW: args [polyline, style?, head?, playerId?]
// where polyline is "[[x1,y1],[x2,y2],...]".
func (p *Parser) ParseArrowImport(data []string) (ArrowImport, error) {
	imp := ArrowImport{Style: core.StyleStraight, Head: core.HeadNormal}

	if len(data) < 1 {
		return imp, fmt.Errorf("%w: :ARROW:NEW: needs 1 arg, got 0", ErrInvalidArgs)
	}

	points, err := geo.ParsePolyline(data[0])
	if err != nil {
		return imp, fmt.Errorf("%w: :ARROW:NEW: %w", ErrInvalidArgs, err)
	}
	imp.Points = points

	rest := []string{}
	if len(data) > 1 {
		rest, _ = clean(":ARROW:NEW:", data[1:], 0)
	}

	if s := optional(rest, 0); s != "" {
		imp.Style = core.SegmentStyle(s)
		if !imp.Style.Valid() {
			return imp, fmt.Errorf("%w: unknown segment style %q", ErrInvalidArgs, s)
		}
	}
	if h := optional(rest, 1); h != "" {
		imp.Head = core.HeadStyle(h)
		if !imp.Head.Valid() {
			return imp, fmt.Errorf("%w: unknown head style %q", ErrInvalidArgs, h)
		}
	}
	imp.PlayerID = optional(rest, 2)

	return imp, nil
}
