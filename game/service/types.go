package service

import (
	"time"

	"github.com/wricardo/mcp-training/icerunner/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	BoardName      string            `json:"board_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// MoveResult contains the result of a single slide
type MoveResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
	Step      *StepInfo         `json:"step,omitempty"`
}

// BulkMoveResult contains the result of multiple slides
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // Machine-friendly code: blocked|invalid_direction|victory
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartPos engine.Position `json:"start_pos"`
	EndPos   engine.Position `json:"end_pos"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	Victory       bool     `json:"victory"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed slide
type StepInfo struct {
	Idx     int             `json:"idx"`
	Dir     string          `json:"dir"`
	From    engine.Position `json:"from"`
	To      engine.Position `json:"to"`
	Success bool            `json:"success"`
	Victory bool            `json:"victory,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "blocked", "victory", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// SolveResult describes a shortest solution from some board
type SolveResult struct {
	Solvable   bool           `json:"solvable"`
	Moves      []string       `json:"moves"`
	Notation   string         `json:"notation"`
	Length     int            `json:"length"`
	Explored   int            `json:"explored"`
	Steps      []SolutionStep `json:"steps,omitempty"`
	StartBoard []string       `json:"start_board"`
}

// SolutionStep is one slide of a solution and the board it produces
type SolutionStep struct {
	Direction string   `json:"direction"`
	Layout    []string `json:"layout"`
}

// HintResult suggests the next slide towards the goal
type HintResult struct {
	Direction string `json:"direction,omitempty"`
	Remaining int    `json:"remaining"`
	Solvable  bool   `json:"solvable"`
	Message   string `json:"message"`
}

// BoardInfo provides information about a board in the library
type BoardInfo struct {
	Filename string          `json:"filename"`
	BoardID  string          `json:"board_id"` // The identifier to use for session creation
	Layout   []string        `json:"layout"`
	Start    engine.Position `json:"start"`
	Goal     engine.Position `json:"goal"`
	Walls    int             `json:"walls"`
	Solvable bool            `json:"solvable"`
	MinMoves int             `json:"min_moves"` // -1 when the board has no solution
}
