package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/service"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API at baseURL
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Ice Runner",
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ice Runner - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide the marker (S) onto the goal (E) on a 5x5 board of ice (.) and walls (*).
A slide keeps going until the next cell is a wall or the board edge.

AVAILABLE TOOLS:
- create_session / list_sessions / get_session: manage games
- game_state: current board, marker, goal and possible slides
- move: one slide (north/south/west/east) - requires intent explanation
- bulk_move: several slides at once - requires intent explanation
- reset_game: back to the starting board
- move_history: past slides
- solve / hint: shortest solution from the current board
- list_boards / solve_board: board library and stateless solving
- game_instructions: the full rules

NOTE: The 'intent' parameter on move/bulk_move serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func directionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"north", "south", "west", "east", "up", "down", "left", "right"},
		"description": "Direction to slide",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session, optionally on a named board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board_id": map[string]interface{}{
					"type":        "string",
					"description": "Board to play (optional, see list_boards)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide the marker in a direction until it is blocked",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction":  directionProperty(),
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this slide",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before sliding",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Execute up to %d slides in sequence, stopping at the first blocked slide or the goal", engine.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"moves": map[string]interface{}{
					"type":        "array",
					"items":       directionProperty(),
					"description": "Array of directions",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of slides",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before sliding",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to its starting board",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the slide history of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "number",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Entries per page (default 20, max 100)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	// Solving
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve",
		Description: "Get a shortest slide sequence from the session's current board to the goal",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hint",
		Description: "Get the next slide of a shortest solution",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleHint)

	// Boards
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List the boards available for new sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListBoards)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_board",
		Description: "Solve a board given as text: five lines of five symbols from . * S E",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": map[string]interface{}{
					"type":        "string",
					"description": "Board text, one line per row, each ending with a newline",
				},
			},
			Required: []string{"board"},
		},
	}, c.handleSolveBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete game rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// HTTPHandler serves single JSON-RPC messages posted to it
func (c *Client) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := c.mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.WithError(err).Warn("failed to write MCP response")
		}
	})
}

// apiCall performs a REST call and decodes the JSON answer into result
func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID, _ := arguments(request)["board_id"].(string)

	body := map[string]string{}
	if boardID != "" {
		body["board_id"] = boardID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nBoard: %s\n\n%s", session.ID, session.BoardName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "in progress"
		if s.GameState != nil && s.GameState.Victory {
			status = "solved"
		}
		result += fmt.Sprintf("- %s (Board: %s, %s, Created: %s)\n",
			s.ID, s.BoardName, status, s.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/move")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, _ := args["direction"].(string)
	reset, _ := args["reset"].(bool)
	intent, _ := args["intent"].(string)
	log.WithFields(log.Fields{"direction": direction, "intent": intent}).Debug("mcp move")

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/bulk-move")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	movesRaw, _ := args["moves"].([]interface{})
	reset, _ := args["reset"].(bool)
	intent, _ := args["intent"].(string)
	log.WithFields(log.Fields{"moves": len(movesRaw), "intent": intent}).Debug("mcp bulk move")

	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBulkMoveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/reset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query := url.Values{}
	query.Set("order", "asc")
	if page, ok := args["page"].(float64); ok {
		query.Set("page", fmt.Sprint(int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		query.Set("limit", fmt.Sprint(int(limit)))
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path+"?"+query.Encode(), nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/solution")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.SolveResult
	if err := c.apiCall(ctx, "GET", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/hint")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.HintResult
	if err := c.apiCall(ctx, "GET", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result.Message), nil
}

func (c *Client) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var infos []service.BoardInfo
	if err := c.apiCall(ctx, "GET", "/api/boards", nil, &infos); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBoards(infos)), nil
}

func (c *Client) handleSolveBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	board, _ := arguments(request)["board"].(string)

	var result service.SolveResult
	if err := c.apiCall(ctx, "POST", "/api/solve", map[string]string{"board": board}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}
