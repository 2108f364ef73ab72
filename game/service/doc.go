// Package service provides the business logic layer for Ice Runner.
//
// The service package implements:
//   - Multi-session game management
//   - Board library access and validation
//   - Slide processing, single and bulk
//   - Solving and hints from the current position
//   - Move history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// BoardLibrary loads, lists and stores boards.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, board management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	library, _ := boards.NewManager("boards")
//	gameService := service.NewGameService(sessionMgr, library)
//
//	// Create a new session on the default board
//	sessionInfo, err := gameService.CreateSession(ctx, "")
package service
