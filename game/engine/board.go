package engine

import (
	"fmt"
	"strings"
)

// Board is the full puzzle state: the content of every cell plus the cached
// position of the end cell. Board is a comparable value; copying it yields
// an independent board, and equal boards describe the same state.
type Board struct {
	cells [GridSize][GridSize]Object
	end   Position
}

// Get returns the object at p.
func (b Board) Get(p Position) Object {
	return b.cells[p.y][p.x]
}

// Set stores o at p. Storing End also moves the cached goal position.
// The end cell may only be overwritten by End or by the marker; Set panics
// on any other object there, since the goal would be lost.
func (b *Board) Set(p Position, o Object) {
	if p == b.end && b.Get(p).IsEnd() && o != End && o != Start {
		panic(fmt.Sprintf("engine.Board.Set: cannot overwrite the end cell %v with %q", p, o))
	}
	b.cells[p.y][p.x] = o
	if o == End {
		b.end = p
	}
}

// End returns the goal position.
func (b Board) End() Position {
	return b.end
}

// Marker returns the position of the start marker, scanning in row-major
// order. The second result is false for a board without a marker.
func (b Board) Marker() (Position, bool) {
	for p := range Positions() {
		if b.Get(p).IsStart() {
			return p, true
		}
	}
	return Position{}, false
}

// Count returns the number of cells holding o.
func (b Board) Count(o Object) int {
	count := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == o {
				count++
			}
		}
	}
	return count
}

// Rows renders each row of the board as a string of symbols.
func (b Board) Rows() []string {
	rows := make([]string, 0, GridSize)
	for _, row := range b.cells {
		var sb strings.Builder
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// String renders the board in the text format: one symbol per cell and a
// newline after every row. Empty cells render as nothing.
func (b Board) String() string {
	var sb strings.Builder
	for p := range Positions() {
		sb.WriteString(b.Get(p).String())
		if p.x == GridSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// MarshalText encodes the board in the text format.
func (b Board) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes a board with Parse.
func (b *Board) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
