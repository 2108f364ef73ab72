package engine

import (
	"fmt"
	"iter"
	"strings"
)

// Direction is one of the four cardinal directions the marker can slide in.
type Direction uint8

const (
	North Direction = iota
	South
	West
	East
)

var allDirections = [...]Direction{North, South, West, East}

// Directions yields North, South, West, East, in that order. Move
// generation tries directions in this order.
func Directions() iter.Seq[Direction] {
	return func(yield func(Direction) bool) {
		for _, d := range allDirections {
			if !yield(d) {
				return
			}
		}
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	default:
		return West
	}
}

// String renders the direction as an arrow.
func (d Direction) String() string {
	switch d {
	case North:
		return "↑"
	case South:
		return "↓"
	case West:
		return "←"
	case East:
		return "→"
	}
	return "?"
}

// Name returns the lowercase direction name.
func (d Direction) Name() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	}
	return "unknown"
}

// ParseDirection accepts direction names (north), screen names (up),
// single letters (n, u) and arrows (↑), case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "up", "n", "u", "↑":
		return North, nil
	case "south", "down", "s", "d", "↓":
		return South, nil
	case "west", "left", "w", "l", "←":
		return West, nil
	case "east", "right", "e", "r", "→":
		return East, nil
	}
	return North, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.Name()), nil
}

// UnmarshalText decodes any form accepted by ParseDirection.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
