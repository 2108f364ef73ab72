package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// idLength is the number of hex characters kept from a generated UUID
const idLength = 8

// Manager handles game session lifecycle
type Manager struct {
	sessions    map[string]*service.Session
	persistence SessionPersistence
	mu          sync.RWMutex
}

// NewManager creates a new in-memory session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a new session manager with persistence
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

// Create creates a new session playing board. An empty id generates one.
func (m *Manager) Create(id, boardName string, board engine.Board) (*service.Session, error) {
	if id == "" {
		id = generateSessionID()
	} else if strings.ContainsAny(id, "/\\. ") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	eng, err := engine.NewEngine(boardName, board)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := m.sessions[key]; exists {
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	session := &service.Session{
		ID:             key,
		BoardName:      boardName,
		Engine:         eng,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[key] = session

	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			log.WithError(err).WithField("session", key).Warn("failed to persist new session")
		}
	}

	return session, nil
}

// Get retrieves a session by ID (case-insensitive), falling back to
// persistence when it is not in memory
func (m *Manager) Get(id string) (*service.Session, error) {
	key := strings.ToLower(id)

	m.mu.RLock()
	session, exists := m.sessions[key]
	m.mu.RUnlock()
	if exists {
		return session, nil
	}

	if m.persistence == nil || !m.persistence.Exists(key) {
		return nil, ErrSessionNotFound
	}

	session, err := m.persistence.Load(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another caller may have loaded it first
	if existing, ok := m.sessions[key]; ok {
		return existing, nil
	}
	m.sessions[key] = session
	return session, nil
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

// Delete removes a session from memory and persistence
func (m *Manager) Delete(id string) error {
	key := strings.ToLower(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	_, inMemory := m.sessions[key]
	delete(m.sessions, key)

	if m.persistence != nil && m.persistence.Exists(key) {
		if err := m.persistence.Delete(key); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory removes a session from memory only
func (m *Manager) DeleteFromMemory(id string) error {
	key := strings.ToLower(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[key]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, key)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}
	session.LastAccessedAt = time.Now()
	return nil
}

// Save saves a specific session to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	return m.persistence.Save(session)
}

// CleanupExpiredSessions removes sessions from memory that haven't been
// accessed within maxAge
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// RunCleanup prunes expired sessions every interval until ctx is done
func (m *Manager) RunCleanup(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.CleanupExpiredSessions(maxAge); removed > 0 {
				log.WithField("removed", removed).Info("cleaned up expired sessions")
			}
		}
	}
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// LoadPersistedSessions loads all persisted sessions into memory
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessionIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range sessionIDs {
		key := strings.ToLower(id)
		if _, exists := m.sessions[key]; exists {
			continue
		}

		session, err := m.persistence.Load(id)
		if err != nil {
			log.WithError(err).WithField("session", id).Warn("failed to load persisted session")
			continue
		}
		m.sessions[key] = session
		loaded++
	}

	if loaded > 0 {
		log.WithField("count", loaded).Info("loaded persisted sessions")
	}
	return nil
}

// SaveAllSessions saves all in-memory sessions to persistence
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sessions := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.mu.RUnlock()

	failed := 0
	for _, session := range sessions {
		if err := m.persistence.Save(session); err != nil {
			log.WithError(err).WithField("session", session.ID).Warn("failed to save session")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to save %d sessions", failed)
	}
	return nil
}

// generateSessionID returns the first hex characters of a random UUID
func generateSessionID() string {
	return uuid.NewString()[:idLength]
}
