package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/icerunner/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, boardName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Solving
	Solve(ctx context.Context, sessionID string) (*SolveResult, error)
	Hint(ctx context.Context, sessionID string) (*HintResult, error)
	SolveBoard(ctx context.Context, text string) (*SolveResult, error)

	// Boards
	ListBoards(ctx context.Context) ([]*BoardInfo, error)
	LoadBoard(ctx context.Context, name string) (*BoardInfo, error)
	SaveBoard(ctx context.Context, name, text string) (*BoardInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, boardName string, board engine.Board) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// BoardLibrary handles board loading and storage
type BoardLibrary interface {
	LoadBoard(name string) (engine.Board, error)
	ListBoards() ([]*BoardInfo, error)
	GetDefault() (string, engine.Board)
	SaveBoard(name, text string) (engine.Board, error)
}

// Session represents an active game session
type Session struct {
	ID             string
	BoardName      string
	Engine         *engine.GameEngine
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
