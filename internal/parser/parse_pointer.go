package parser

import (
	"fmt"
	"strings"

	"github.com/routeboard/engine/pkg/core"
)

// ParseClick parses :CLICK: args [x, y, playerId?]
func (p *Parser) ParseClick(data []string) (ClickArgs, error) {
	var click ClickArgs

	data, err := clean(":CLICK:", data, 2)
	if err != nil {
		return click, err
	}

	click.At, err = pointAt(":CLICK:", data, 0)
	if err != nil {
		return click, err
	}
	click.PlayerID = optional(data, 2)

	return click, nil
}

// ParseMove parses :MOVE: args [x, y]
func (p *Parser) ParseMove(data []string) (core.Point, error) {
	data, err := clean(":MOVE:", data, 2)
	if err != nil {
		return core.Point{}, err
	}
	return pointAt(":MOVE:", data, 0)
}

// ParseKey parses :KEY: args [key]. Key names are case-insensitive.
func (p *Parser) ParseKey(data []string) (string, error) {
	data, err := clean(":KEY:", data, 1)
	if err != nil {
		return "", err
	}
	key := strings.ToLower(data[0])
	if key == "" {
		return "", fmt.Errorf("%w: :KEY: empty key", ErrInvalidArgs)
	}
	return key, nil
}

// ParseCenter parses :CENTER: args [x, y]
func (p *Parser) ParseCenter(data []string) (core.Point, error) {
	data, err := clean(":CENTER:", data, 2)
	if err != nil {
		return core.Point{}, err
	}
	return pointAt(":CENTER:", data, 0)
}
