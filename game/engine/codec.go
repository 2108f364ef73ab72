package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedBoard matches every error returned by Parse. The finer kinds
// below identify which rule was broken.
var ErrMalformedBoard = errors.New("malformed board")

var (
	ErrUnexpectedEOF    = errors.New("input ends before the grid is complete")
	ErrRowLength        = errors.New("row does not have exactly 5 cells")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrDuplicateStart   = errors.New("only one start point allowed")
	ErrDuplicateEnd     = errors.New("only one end point allowed")
	ErrMissingStart     = errors.New("no start point")
	ErrMissingEnd       = errors.New("no end point")
	ErrTrailingContent  = errors.New("unexpected content after the grid")
)

// ParseError reports where and why Parse rejected its input. Row and Column
// are 1-based; both are zero for errors that only show up after the scan.
type ParseError struct {
	Err    error
	Row    int
	Column int
	Char   rune
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Char != 0 {
		msg = fmt.Sprintf("%s %q", msg, e.Char)
	}
	if e.Row == 0 {
		return fmt.Sprintf("%v: %s", ErrMalformedBoard, msg)
	}
	return fmt.Sprintf("%v: line %d, column %d: %s", ErrMalformedBoard, e.Row, e.Column, msg)
}

// Unwrap exposes both ErrMalformedBoard and the specific kind to errors.Is.
func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedBoard, e.Err}
}

// Parse reads a board from its text format: five lines of five symbols,
// each terminated by '\n', with nothing after the last newline. Parsing
// stops at the first broken rule; a missing start or end can only be
// reported once the whole grid has been read.
func Parse(s string) (Board, error) {
	return parse(s, true)
}

// parse implements Parse. With requireEnd false a grid without an 'E' is
// accepted; the caller then owns the goal position.
func parse(s string, requireEnd bool) (Board, error) {
	var board Board
	r := strings.NewReader(s)
	start, end := false, false

	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			c, _, err := r.ReadRune()
			if err != nil {
				return Board{}, &ParseError{Err: ErrUnexpectedEOF, Row: y + 1, Column: x + 1}
			}
			if c == '\n' {
				return Board{}, &ParseError{Err: ErrRowLength, Row: y + 1, Column: x + 1}
			}
			obj, ok := ObjectFromSymbol(c)
			if !ok {
				return Board{}, &ParseError{Err: ErrInvalidCharacter, Row: y + 1, Column: x + 1, Char: c}
			}
			switch obj {
			case Start:
				if start {
					return Board{}, &ParseError{Err: ErrDuplicateStart, Row: y + 1, Column: x + 1}
				}
				start = true
			case End:
				if end {
					return Board{}, &ParseError{Err: ErrDuplicateEnd, Row: y + 1, Column: x + 1}
				}
				end = true
			}
			board.Set(NewPosition(x, y), obj)
		}

		c, _, err := r.ReadRune()
		if err != nil {
			return Board{}, &ParseError{Err: ErrUnexpectedEOF, Row: y + 1, Column: GridSize + 1}
		}
		if c != '\n' {
			return Board{}, &ParseError{Err: ErrRowLength, Row: y + 1, Column: GridSize + 1}
		}
	}

	if !start {
		return Board{}, &ParseError{Err: ErrMissingStart}
	}
	if !end && requireEnd {
		return Board{}, &ParseError{Err: ErrMissingEnd}
	}
	if r.Len() > 0 {
		return Board{}, &ParseError{Err: ErrTrailingContent, Row: GridSize + 1, Column: 1}
	}

	return board, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// boards embedded in code and tests.
func MustParse(s string) Board {
	board, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return board
}
