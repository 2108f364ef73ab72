// Package session provides session management for Ice Runner.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management and expiration
//   - Optional persistence to JSON files or Redis
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns its own engine.GameEngine, so moves in one session never
// affect another.
//
// Session Identifiers:
//
// Sessions use 8-character lowercase hex IDs taken from a random UUID.
// Lookups are case-insensitive.
//
// Persistence:
//
// A SessionPersistence stores the board name, the initial board text and the
// full game state. Because the initial board travels with the session, a
// persisted session can be restored even after its board file changed or
// was removed from the library.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions")
//	manager := session.NewManagerWithPersistence(persistence)
//	_ = manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", "classic", board)
//	sess, err = manager.Get(sess.ID)
package session
