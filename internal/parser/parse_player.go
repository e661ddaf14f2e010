package parser

import (
	"encoding/json"
	"fmt"

	"github.com/routeboard/engine/pkg/core"
)

const (
	DefaultPlayerSize  = 20.0
	DefaultPlayerShape = "circle"
)

// ParsePlayerNew parses :PLAYER:NEW: args [team, x, y, size?, shape?]
func (p *Parser) ParsePlayerNew(data []string) (PlayerSpec, error) {
	spec := PlayerSpec{Size: DefaultPlayerSize, Shape: DefaultPlayerShape}

	data, err := clean(":PLAYER:NEW:", data, 3)
	if err != nil {
		return spec, err
	}

	spec.Team = core.Team(data[0])
	if !spec.Team.Valid() {
		return spec, fmt.Errorf("%w: unknown team %q", ErrInvalidArgs, data[0])
	}

	spec.At, err = pointAt(":PLAYER:NEW:", data, 1)
	if err != nil {
		return spec, err
	}

	if size := optional(data, 3); size != "" {
		v, err := parseCoord(size)
		if err != nil || v <= 0 {
			p.logger.Warn("Error parsing player size, using default", "value", size)
		} else {
			spec.Size = v
		}
	}

	if shape := optional(data, 4); shape != "" {
		spec.Shape = shape
	}

	return spec, nil
}

// ParsePlayerPosition parses :PLAYER:DRAG: and :PLAYER:DROP: args [id, x, y]
func (p *Parser) ParsePlayerPosition(data []string) (PlayerPosition, error) {
	var pos PlayerPosition

	data, err := clean(":PLAYER:", data, 3)
	if err != nil {
		return pos, err
	}

	pos.ID = data[0]
	at, err := pointAt(":PLAYER:", data, 1)
	if err != nil {
		return pos, err
	}
	pos.X, pos.Y = at.X, at.Y

	return pos, nil
}

// ParseGroupDrop parses :GROUP:DROP: args [json], json being [{"id":..,"x":..,"y":..},...]
func (p *Parser) ParseGroupDrop(data []string) ([]PlayerPosition, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("%w: :GROUP:DROP: needs 1 arg, got 0", ErrInvalidArgs)
	}

	var moves []PlayerPosition
	if err := json.Unmarshal([]byte(data[0]), &moves); err != nil {
		return nil, fmt.Errorf("%w: :GROUP:DROP: %w", ErrInvalidArgs, err)
	}
	for i, m := range moves {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: :GROUP:DROP: move %d has no id", ErrInvalidArgs, i)
		}
	}
	return moves, nil
}

// ParseID parses a single entity id argument
func (p *Parser) ParseID(data []string) (string, error) {
	data, err := clean("id", data, 1)
	if err != nil {
		return "", err
	}
	if data[0] == "" {
		return "", fmt.Errorf("%w: empty id", ErrInvalidArgs)
	}
	return data[0], nil
}
