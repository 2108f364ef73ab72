package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrNilState     = errors.New("state cannot be nil")
)

// Engine provides the main interface for interactive play on one board
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsVictory() bool
	GetMarkerPosition() Position

	// Movement operations
	Move(direction Direction) bool
	CanMove(direction Direction) bool
	GetPossibleMoves() []string

	// Boards
	Board() Board
	InitialBoard() Board

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	name    string
	initial Board
	board   Board
	state   *GameState
}

// NewEngine creates a game engine starting from board. The board must hold
// exactly one start and one end, which every parsed board does.
func NewEngine(name string, board Board) (*GameEngine, error) {
	if err := ValidateBoard(board); err != nil {
		return nil, err
	}

	e := &GameEngine{
		name:    name,
		initial: board,
		board:   board,
		state: &GameState{
			BoardName:    name,
			MoveHistory:  []MoveHistoryEntry{},
			CurrentMoves: []MoveHistoryEntry{},
		},
	}
	e.refresh(fmt.Sprintf("Welcome to %s! Slide the marker onto the goal.", displayName(name)))
	return e, nil
}

// ValidateBoard checks the start/end invariant of a board built outside Parse.
func ValidateBoard(board Board) error {
	if n := board.Count(Start); n != 1 {
		return fmt.Errorf("%w: want exactly one start, got %d", ErrInvalidBoard, n)
	}
	if n := board.Count(End); n != 1 {
		return fmt.Errorf("%w: want exactly one end, got %d", ErrInvalidBoard, n)
	}
	if board.Count(Empty) != 0 {
		return fmt.Errorf("%w: %d cells are unset", ErrInvalidBoard, board.Count(Empty))
	}
	return nil
}

// GetState returns a copy of the current game state
func (e *GameEngine) GetState() *GameState {
	s := *e.state
	s.Layout = slices.Clone(s.Layout)
	s.PossibleMoves = slices.Clone(s.PossibleMoves)
	s.MoveHistory = slices.Clone(s.MoveHistory)
	s.CurrentMoves = slices.Clone(s.CurrentMoves)
	return &s
}

// SetState restores a previously saved state (used for persistence loading).
// The layout must describe a board with the same goal as the engine's.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return ErrNilState
	}
	board, err := e.restoreBoard(state.Layout)
	if err != nil {
		return err
	}

	e.board = board
	e.state = state
	if e.state.MoveHistory == nil {
		e.state.MoveHistory = []MoveHistoryEntry{}
	}
	if e.state.CurrentMoves == nil {
		e.state.CurrentMoves = []MoveHistoryEntry{}
	}
	e.refresh(state.Message)
	return nil
}

// restoreBoard rebuilds a board from saved layout rows. Once the marker has
// reached the goal the layout no longer shows an 'E', so a layout without
// one takes the engine's goal, which must then hold the marker or ice.
func (e *GameEngine) restoreBoard(layout []string) (Board, error) {
	board, err := parse(strings.Join(layout, "\n")+"\n", false)
	if err != nil {
		return Board{}, fmt.Errorf("restore layout: %w", err)
	}
	goal := e.initial.End()
	if board.Count(End) == 0 {
		if obj := board.Get(goal); obj != Start && obj != Ice {
			return Board{}, fmt.Errorf("%w: goal %v holds %q", ErrInvalidBoard, goal, obj)
		}
		board.end = goal
	}
	if board.End() != goal {
		return Board{}, fmt.Errorf("%w: goal moved from %v to %v", ErrInvalidBoard, goal, board.End())
	}
	return board, nil
}

// Reset resets the game to the initial board
func (e *GameEngine) Reset() *GameState {
	// Preserve cumulative history and totals across resets
	e.board = e.initial
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0
	e.refresh("Board reset to its starting position.")
	return e.GetState()
}

// IsVictory returns whether the marker rests on the goal
func (e *GameEngine) IsVictory() bool {
	return e.board.IsGoal()
}

// GetMarkerPosition returns the current marker position
func (e *GameEngine) GetMarkerPosition() Position {
	marker, _ := e.board.Marker()
	return marker
}

// Board returns the current board
func (e *GameEngine) Board() Board {
	return e.board
}

// InitialBoard returns the board the game started from
func (e *GameEngine) InitialBoard() Board {
	return e.initial
}

// Name returns the board name the engine was created with
func (e *GameEngine) Name() string {
	return e.name
}

// Move slides the marker in the given direction. It returns false when the
// puzzle is already solved or the slide is blocked.
func (e *GameEngine) Move(direction Direction) bool {
	from := e.GetMarkerPosition()

	if e.IsVictory() {
		e.addMoveToHistory(direction, from, from, false)
		e.refresh("Puzzle already solved. Reset to play again.")
		return false
	}

	t, ok := e.transition(direction)
	if !ok {
		e.addMoveToHistory(direction, from, from, false)
		e.refresh(fmt.Sprintf("Can't slide %s from %v: blocked", direction.Name(), from))
		return false
	}

	e.board = t.Board
	e.addMoveToHistory(direction, t.From, t.To, true)

	msg := fmt.Sprintf("Slid %s from %v to %v", direction.Name(), t.From, t.To)
	if e.board.IsGoal() {
		msg = fmt.Sprintf("Goal reached in %d moves!", e.successfulCurrentMoves())
	}
	e.refresh(msg)
	return true
}

// CanMove checks if the marker can slide in the specified direction
func (e *GameEngine) CanMove(direction Direction) bool {
	if e.IsVictory() {
		return false
	}
	_, ok := e.transition(direction)
	return ok
}

// GetPossibleMoves returns the names of all directions the marker can slide in
func (e *GameEngine) GetPossibleMoves() []string {
	possible := []string{}
	for d := range Directions() {
		if e.CanMove(d) {
			possible = append(possible, d.Name())
		}
	}
	return possible
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// BulkMove executes multiple slides in sequence, returning success status for
// each. It stops after the first blocked slide or once the goal is reached.
func (e *GameEngine) BulkMove(moves []Direction) []bool {
	results := make([]bool, 0, len(moves))

	for _, direction := range moves {
		if e.IsVictory() {
			break
		}

		success := e.Move(direction)
		results = append(results, success)
		if !success {
			break
		}
	}

	return results
}

func (e *GameEngine) transition(direction Direction) (Transition, bool) {
	for t := range e.board.Transitions() {
		if t.Move.Direction == direction {
			return t, true
		}
	}
	return Transition{}, false
}

func (e *GameEngine) successfulCurrentMoves() int {
	n := 0
	for _, m := range e.state.CurrentMoves {
		if m.Success {
			n++
		}
	}
	return n
}

// addMoveToHistory records a slide in both the cumulative and current histories
func (e *GameEngine) addMoveToHistory(direction Direction, from, to Position, success bool) {
	entry := MoveHistoryEntry{
		Direction:    direction,
		FromPosition: from,
		ToPosition:   to,
		Timestamp:    time.Now().Unix(),
		Success:      success,
		MoveNumber:   e.state.TotalMoves + 1,
	}
	e.state.MoveHistory = append(e.state.MoveHistory, entry)
	e.state.TotalMoves++

	e.state.CurrentMoves = append(e.state.CurrentMoves, entry)
	e.state.CurrentMovesCount++
}

// refresh recomputes the derived fields of the state from the current board
func (e *GameEngine) refresh(message string) {
	s := e.state
	s.BoardName = e.name
	s.Layout = e.board.Rows()
	s.Marker = e.GetMarkerPosition()
	s.Goal = e.board.End()
	s.Victory = e.board.IsGoal()
	s.PossibleMoves = e.GetPossibleMoves()
	s.Stuck = !s.Victory && len(s.PossibleMoves) == 0
	s.Message = message
}

func displayName(name string) string {
	if name == "" {
		return "Ice Runner"
	}
	return name
}
