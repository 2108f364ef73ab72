// Package mcp provides a Model Context Protocol server for Ice Runner.
//
// The server is a thin client: every tool call is translated into a call to
// the REST API at a base URL and the JSON answer is rendered as text for the
// agent. The same *server.MCPServer can be served over stdio or mounted on
// an HTTP endpoint with HTTPHandler.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state, move, bulk_move, reset_game, move_history: play
//   - solve, hint: shortest solution from the current board
//   - list_boards, solve_board: the board library and stateless solving
//   - game_instructions: the rules
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	router.Handle("/mcp", client.HTTPHandler())
package mcp
