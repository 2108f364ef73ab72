package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions
type PersistedSessionData struct {
	ID             string            `json:"id"`
	BoardName      string            `json:"board_name"`
	InitialBoard   string            `json:"initial_board"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// encodeSession renders a session in its persisted JSON form
func encodeSession(session *service.Session) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}

	data := PersistedSessionData{
		ID:             session.ID,
		BoardName:      session.BoardName,
		InitialBoard:   session.Engine.InitialBoard().String(),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session data: %w", err)
	}
	return jsonData, nil
}

// decodeSession rebuilds a session and its engine from persisted JSON
func decodeSession(jsonData []byte) (*service.Session, error) {
	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	board, err := engine.Parse(data.InitialBoard)
	if err != nil {
		return nil, fmt.Errorf("failed to parse initial board: %w", err)
	}

	gameEngine, err := engine.NewEngine(data.BoardName, board)
	if err != nil {
		return nil, fmt.Errorf("failed to create game engine: %w", err)
	}

	if data.GameState != nil {
		if err := gameEngine.SetState(data.GameState); err != nil {
			return nil, fmt.Errorf("failed to set game state: %w", err)
		}
	}

	return &service.Session{
		ID:             data.ID,
		BoardName:      data.BoardName,
		Engine:         gameEngine,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}
