// Package api provides the HTTP REST API for Ice Runner.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions                 Create a session {"board_id": "classic"}
//   - GET    /api/sessions                 List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET    /api/sessions/{id}            Get a session
//   - DELETE /api/sessions/{id}            Delete a session
//
// Game operations:
//   - GET  /api/sessions/{id}/state       Current game state
//   - POST /api/sessions/{id}/move        Slide once {"direction": "north", "reset": false}
//   - POST /api/sessions/{id}/bulk-move   Slide many {"moves": ["east", "south"], "reset": false}
//   - POST /api/sessions/{id}/reset       Back to the starting board
//   - GET  /api/sessions/{id}/history     Paginated history (?page=1&limit=20&order=desc)
//   - GET  /api/sessions/{id}/solution    Shortest solution from the current board
//   - GET  /api/sessions/{id}/hint        First slide of that solution
//
// Boards:
//   - GET  /api/boards                    List the board library
//   - POST /api/boards                    Save a board {"name": "mine", "board": "S....\n..."}
//   - GET  /api/boards/{name}             Describe one board
//   - POST /api/solve                     Solve a board given as text {"board": "..."}
//
// Other:
//   - GET /api/health                     Liveness probe
//   - GET /ws?session={id}                WebSocket state updates for a session
//
// Errors are returned as JSON with an HTTP status derived from the error:
//
//	{"error": "session not found: ..."}
//
// Unknown sessions and boards map to 404, malformed boards, bad directions
// and bad request bodies to 400, everything else to 500.
package api
