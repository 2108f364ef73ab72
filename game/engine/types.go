package engine

import (
	"errors"
	"fmt"
)

const (
	// GridSize is the width and height of every board.
	GridSize = 5

	// MaxBulkMoves caps the number of slides accepted in a single bulk request.
	MaxBulkMoves = 50
)

var ErrInvalidDirection = errors.New("invalid direction")

// Object is the content of a board cell. The zero value, Empty, marks a
// cell that has not been set; a parsed board never contains it.
type Object uint8

const (
	Empty Object = iota
	Ice
	Wall
	Start
	End
)

// ObjectFromSymbol maps a board character to its object.
func ObjectFromSymbol(r rune) (Object, bool) {
	switch r {
	case '.':
		return Ice, true
	case '*':
		return Wall, true
	case 'S':
		return Start, true
	case 'E':
		return End, true
	}
	return Empty, false
}

// String returns the single-character symbol, or "" for Empty.
func (o Object) String() string {
	switch o {
	case Ice:
		return "."
	case Wall:
		return "*"
	case Start:
		return "S"
	case End:
		return "E"
	}
	return ""
}

// Name returns a human readable name for the object.
func (o Object) Name() string {
	switch o {
	case Ice:
		return "ice"
	case Wall:
		return "wall"
	case Start:
		return "start"
	case End:
		return "end"
	}
	return "empty"
}

// MarshalText encodes the object by name.
func (o Object) MarshalText() ([]byte, error) {
	return []byte(o.Name()), nil
}

func (o Object) IsIce() bool      { return o == Ice }
func (o Object) IsObstacle() bool { return o == Wall }
func (o Object) IsStart() bool    { return o == Start }
func (o Object) IsEnd() bool      { return o == End }

// Move labels a transition: which object moved and in which direction.
type Move struct {
	Object    Object    `json:"object"`
	Direction Direction `json:"direction"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s%s", m.Object, m.Direction)
}

// Transition is a move together with the board it produces.
type Transition struct {
	Move  Move
	Board Board
	From  Position
	To    Position
}

// GameState is the snapshot of an interactive game exposed to clients.
type GameState struct {
	Layout        []string           `json:"layout"`
	Marker        Position           `json:"marker"`
	Goal          Position           `json:"goal"`
	Victory       bool               `json:"victory"`
	Stuck         bool               `json:"stuck"`
	Message       string             `json:"message"`
	BoardName     string             `json:"board_name"`
	PossibleMoves []string           `json:"possible_moves"`
	MoveHistory   []MoveHistoryEntry `json:"move_history"`
	TotalMoves    int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry represents a single slide attempt in the game history
type MoveHistoryEntry struct {
	Direction    Direction `json:"direction"`
	FromPosition Position  `json:"from_position"`
	ToPosition   Position  `json:"to_position"`
	Timestamp    int64     `json:"timestamp"`
	Success      bool      `json:"success"`
	MoveNumber   int       `json:"move_number"`
}

// FormatMoves renders a move sequence compactly: the object symbol is
// written whenever the moving object changes, followed by direction arrows,
// e.g. "S→↓←".
func FormatMoves(moves []Move) string {
	var out []byte
	last := Empty
	for i, m := range moves {
		if i == 0 || m.Object != last {
			last = m.Object
			out = append(out, m.Object.String()...)
		}
		out = append(out, m.Direction.String()...)
	}
	return string(out)
}
