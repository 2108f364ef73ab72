// Package websocket provides WebSocket transport for Ice Runner.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is served by a read pump and
// a write pump goroutine; the hub's event loop owns registration and
// broadcasting.
//
// Clients join a session with ?session=<id>. Every state change made through
// the REST API is broadcast to the clients of that session:
//
//	{"session_id":"1a2b3c4d","event":"state_update","game_state":{...}}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.ServeWS(w, r, sessionID, state)
//	hub.BroadcastToSession(sessionID, state)
package websocket
