package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/routeboard/engine/internal/geo"
	"github.com/routeboard/engine/internal/util"
	"github.com/routeboard/engine/pkg/core"
)

// ErrInvalidArgs is returned when command arguments are missing or malformed
var ErrInvalidArgs = errors.New("invalid command arguments")

// parseIntFromFloat parses a string that may be an integer ("3") or float ("3.00") into int64.
// Script writers and JSON encoders both tend to serialize whole numbers as floats.
func parseIntFromFloat(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("parseIntFromFloat: %q is not a valid int64", s)
	}
	return int64(f), nil
}

// parseCoord parses one finite coordinate value
func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parseCoord: %q is not finite", s)
	}
	return v, nil
}

// Parser provides pure []string -> typed command argument conversion.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// clean trims quotes from the raw args and checks the minimum count
func clean(command string, data []string, want int) ([]string, error) {
	if len(data) < want {
		return nil, fmt.Errorf("%w: %s needs %d args, got %d", ErrInvalidArgs, command, want, len(data))
	}
	return util.CleanArgs(data), nil
}

// pointAt parses data[i], data[i+1] as a point
func pointAt(command string, data []string, i int) (core.Point, error) {
	at, err := geo.PointFromString(data[i] + "," + data[i+1])
	if err != nil {
		return core.Point{}, fmt.Errorf("%w: %s position (%s, %s): %w", ErrInvalidArgs, command, data[i], data[i+1], err)
	}
	return at, nil
}

// optional returns data[i] or "" when absent
func optional(data []string, i int) string {
	if i < len(data) {
		return data[i]
	}
	return ""
}
