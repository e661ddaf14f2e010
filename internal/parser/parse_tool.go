package parser

import (
	"fmt"

	"github.com/routeboard/engine/internal/drawing"
	"github.com/routeboard/engine/internal/util"
	"github.com/routeboard/engine/pkg/core"
)

// ParseTool parses :TOOL: args [tool]
func (p *Parser) ParseTool(data []string) (drawing.Tool, error) {
	data, err := clean(":TOOL:", data, 1)
	if err != nil {
		return "", err
	}
	tool := drawing.Tool(data[0])
	if !tool.Valid() {
		return "", fmt.Errorf("%w: unknown tool %q", ErrInvalidArgs, data[0])
	}
	return tool, nil
}

// ParseStyle parses :STYLE: args [style]
func (p *Parser) ParseStyle(data []string) (core.SegmentStyle, error) {
	data, err := clean(":STYLE:", data, 1)
	if err != nil {
		return "", err
	}
	style := core.SegmentStyle(data[0])
	if !style.Valid() {
		return "", fmt.Errorf("%w: unknown segment style %q", ErrInvalidArgs, data[0])
	}
	return style, nil
}

// ParseHead parses :HEAD: args [head]
func (p *Parser) ParseHead(data []string) (core.HeadStyle, error) {
	data, err := clean(":HEAD:", data, 1)
	if err != nil {
		return "", err
	}
	head := core.HeadStyle(data[0])
	if !head.Valid() {
		return "", fmt.Errorf("%w: unknown head style %q", ErrInvalidArgs, data[0])
	}
	return head, nil
}

// ParseSnap parses :SNAP: args [on, tolerance?]
func (p *Parser) ParseSnap(data []string) (SnapArgs, error) {
	var snap SnapArgs

	data, err := clean(":SNAP:", data, 1)
	if err != nil {
		return snap, err
	}

	on, ok := util.ParseBool(data[0])
	if !ok {
		return snap, fmt.Errorf("%w: :SNAP: bad toggle %q", ErrInvalidArgs, data[0])
	}
	snap.Enabled = on

	if tol := optional(data, 1); tol != "" {
		v, err := parseCoord(tol)
		if err != nil || v < 0 {
			p.logger.Warn("Ignoring bad snap tolerance", "value", tol)
		} else {
			snap.Tolerance = v
		}
	}

	return snap, nil
}

// ParseToggle parses a single on/off argument
func (p *Parser) ParseToggle(command string, data []string) (bool, error) {
	data, err := clean(command, data, 1)
	if err != nil {
		return false, err
	}
	on, ok := util.ParseBool(data[0])
	if !ok {
		return false, fmt.Errorf("%w: %s bad toggle %q", ErrInvalidArgs, command, data[0])
	}
	return on, nil
}

// ParseMaxSegments parses :SEGMENTS: args [n]. Zero restores the default cap.
func (p *Parser) ParseMaxSegments(data []string) (int, error) {
	data, err := clean(":SEGMENTS:", data, 1)
	if err != nil {
		return 0, err
	}
	n, err := parseIntFromFloat(data[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: :SEGMENTS: bad count %q", ErrInvalidArgs, data[0])
	}
	return int(n), nil
}
