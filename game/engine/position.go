package engine

import (
	"encoding/json"
	"fmt"
	"iter"
)

// Position is a cell address on the board. X is the column and Y the row.
// A Position can only hold values inside the grid.
type Position struct {
	x, y int
}

// NewPosition returns the position at column x, row y. It panics if either
// value is outside [0, GridSize): callers are expected to derive positions
// from Positions or Step, never from unchecked input.
func NewPosition(x, y int) Position {
	if x < 0 || x >= GridSize {
		panic(fmt.Sprintf("engine.NewPosition: x (is %d) should be in [0,%d)", x, GridSize))
	}
	if y < 0 || y >= GridSize {
		panic(fmt.Sprintf("engine.NewPosition: y (is %d) should be in [0,%d)", y, GridSize))
	}
	return Position{x: x, y: y}
}

// X returns the column.
func (p Position) X() int { return p.x }

// Y returns the row.
func (p Position) Y() int { return p.y }

// XY returns the column and row.
func (p Position) XY() (int, int) { return p.x, p.y }

// Step returns the position one cell away in direction d. The second result
// is false when that would leave the board.
func (p Position) Step(d Direction) (Position, bool) {
	x, y := p.x, p.y
	switch d {
	case North:
		if y == 0 {
			return p, false
		}
		y--
	case South:
		if y == GridSize-1 {
			return p, false
		}
		y++
	case West:
		if x == 0 {
			return p, false
		}
		x--
	case East:
		if x == GridSize-1 {
			return p, false
		}
		x++
	default:
		return p, false
	}
	return NewPosition(x, y), true
}

// Positions yields every position of the board in row-major order: the top
// row left to right, then the next row. Parsing, rendering and move
// generation all rely on this order.
func Positions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for y := 0; y < GridSize; y++ {
			for x := 0; x < GridSize; x++ {
				if !yield(NewPosition(x, y)) {
					return
				}
			}
		}
	}
}

// Compare orders positions by row, then column. It returns -1, 0 or +1.
func Compare(a, b Position) int {
	switch {
	case a.y < b.y:
		return -1
	case a.y > b.y:
		return 1
	case a.x < b.x:
		return -1
	case a.x > b.x:
		return 1
	}
	return 0
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.x, p.y)
}

type positionJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MarshalJSON encodes the position as {"x":..,"y":..}.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(positionJSON{X: p.x, Y: p.y})
}

// UnmarshalJSON decodes {"x":..,"y":..}, rejecting values outside the grid.
func (p *Position) UnmarshalJSON(data []byte) error {
	var raw positionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.X < 0 || raw.X >= GridSize || raw.Y < 0 || raw.Y >= GridSize {
		return fmt.Errorf("position (%d,%d) is outside the %dx%d grid", raw.X, raw.Y, GridSize, GridSize)
	}
	*p = Position{x: raw.X, y: raw.Y}
	return nil
}
