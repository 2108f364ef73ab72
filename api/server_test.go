package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/icerunner/game/boards"
	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/service"
	"github.com/wricardo/mcp-training/icerunner/game/session"
	"github.com/wricardo/mcp-training/icerunner/transport/websocket"
)

const classicBoard = "S....\n*....\n*....\n*....\nE....\n"

func newTestServer(t *testing.T) (*Server, *websocket.Hub) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classic.txt"), []byte(classicBoard), 0644))

	library, err := boards.NewManager(dir)
	require.NoError(t, err)

	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	return NewServer(service.NewGameService(session.NewManager(), library), hub), hub
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doRequest(t, h, "POST", "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[service.SessionInfo](t, rec).ID
}

func TestCreateSession(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, "POST", "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	info := decode[service.SessionInfo](t, rec)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, "classic", info.BoardName)
	assert.Equal(t, []string{"S....", "*....", "*....", "*....", "E...."}, info.GameState.Layout)

	rec = doRequest(t, srv, "POST", "/api/sessions", map[string]string{"board_id": "classic"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, "POST", "/api/sessions", map[string]string{"board_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "classic")

	req := httptest.NewRequest("POST", "/api/sessions", strings.NewReader("{bad"))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListGetDeleteSessions(t *testing.T) {
	srv, _ := newTestServer(t)
	first := createSession(t, srv)
	time.Sleep(2 * time.Millisecond)
	second := createSession(t, srv)

	rec := doRequest(t, srv, "GET", "/api/sessions?sort=created&order=asc&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Count    int                   `json:"count"`
		Total    int                   `json:"total"`
		Sessions []service.SessionInfo `json:"sessions"`
	}](t, rec)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, first, list.Sessions[0].ID)

	rec = doRequest(t, srv, "GET", "/api/sessions/"+second, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, "DELETE", "/api/sessions/"+second, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, "GET", "/api/sessions/"+second, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, "DELETE", "/api/sessions/"+second, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMoveAndState(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	rec := doRequest(t, srv, "POST", "/api/sessions/"+id+"/move", map[string]string{"direction": "south"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[service.MoveResult](t, rec).Success)

	rec = doRequest(t, srv, "POST", "/api/sessions/"+id+"/move", map[string]string{"direction": "east"})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[service.MoveResult](t, rec)
	assert.True(t, result.Success)
	assert.Equal(t, engine.NewPosition(4, 0), result.GameState.Marker)

	rec = doRequest(t, srv, "POST", "/api/sessions/"+id+"/move", map[string]string{"direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, "POST", "/api/sessions/nope/move", map[string]string{"direction": "east"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, "GET", "/api/sessions/"+id+"/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[engine.GameState](t, rec)
	assert.Equal(t, engine.NewPosition(4, 0), state.Marker)
	assert.Equal(t, 2, state.TotalMoves)
}

func TestBulkMoveResetAndHistory(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	rec := doRequest(t, srv, "POST", "/api/sessions/"+id+"/bulk-move", map[string]interface{}{
		"moves": []string{"east", "south", "west"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	bulk := decode[service.BulkMoveResult](t, rec)
	assert.True(t, bulk.Victory)
	assert.Equal(t, 3, bulk.MovesExecuted)
	assert.Equal(t, "victory", bulk.StopReasonCode)

	rec = doRequest(t, srv, "POST", "/api/sessions/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	reset := decode[struct {
		State engine.GameState `json:"state"`
	}](t, rec)
	assert.Equal(t, engine.NewPosition(0, 0), reset.State.Marker)
	assert.False(t, reset.State.Victory)

	rec = doRequest(t, srv, "GET", "/api/sessions/"+id+"/history?limit=2&order=asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[service.HistoryResponse](t, rec)
	assert.Equal(t, 3, history.TotalMoves)
	assert.Equal(t, 2, history.TotalPages)
	require.Len(t, history.Moves, 2)
	assert.Equal(t, engine.East, history.Moves[0].Direction)
}

func TestSolutionAndHint(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	rec := doRequest(t, srv, "GET", "/api/sessions/"+id+"/solution", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sol := decode[service.SolveResult](t, rec)
	assert.True(t, sol.Solvable)
	assert.Equal(t, []string{"east", "south", "west"}, sol.Moves)

	rec = doRequest(t, srv, "GET", "/api/sessions/"+id+"/hint", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "east", decode[service.HintResult](t, rec).Direction)

	rec = doRequest(t, srv, "GET", "/api/sessions/nope/solution", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBoards(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, "GET", "/api/boards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]service.BoardInfo](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].MinMoves)

	rec = doRequest(t, srv, "POST", "/api/boards", map[string]string{
		"name":  "straight",
		"board": "S...E\n.....\n.....\n.....\n.....\n",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, decode[service.BoardInfo](t, rec).MinMoves)

	rec = doRequest(t, srv, "GET", "/api/boards/straight.txt", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "straight", decode[service.BoardInfo](t, rec).BoardID)

	rec = doRequest(t, srv, "GET", "/api/boards/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, "POST", "/api/boards", map[string]string{"name": "broken", "board": "S"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, "POST", "/api/boards", map[string]string{"name": "Bad Name", "board": classicBoard})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, "POST", "/api/boards", map[string]string{"board": classicBoard})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveBoard(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, "POST", "/api/solve", map[string]string{"board": classicBoard})
	require.Equal(t, http.StatusOK, rec.Code)
	sol := decode[service.SolveResult](t, rec)
	assert.Equal(t, "S→↓←", sol.Notation)

	rec = doRequest(t, srv, "POST", "/api/solve", map[string]string{"board": "S*...\n*....\n.....\n.....\n....E\n"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[service.SolveResult](t, rec).Solvable)

	rec = doRequest(t, srv, "POST", "/api/solve", map[string]string{"board": "SS...\n"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "only one start point allowed")
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, rec)["status"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", service.ErrSessionNotFound), http.StatusNotFound},
		{session.ErrSessionNotFound, http.StatusNotFound},
		{service.ErrBoardNotFound, http.StatusNotFound},
		{engine.ErrInvalidDirection, http.StatusBadRequest},
		{boards.ErrInvalidName, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}

	_, err := engine.Parse("x")
	assert.Equal(t, http.StatusBadRequest, statusFor(err))
}

func TestWebSocketReceivesMoves(t *testing.T) {
	srv, hub := newTestServer(t)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	id := createSession(t, srv)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + id

	_, resp, err := gorillaws.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws?session=nope", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() websocket.Message {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg websocket.Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	initial := read()
	assert.Equal(t, engine.NewPosition(0, 0), initial.GameState.Marker)
	require.Eventually(t, func() bool { return hub.ClientCount(id) == 1 }, time.Second, 5*time.Millisecond)

	rec := doRequest(t, srv, "POST", "/api/sessions/"+id+"/move", map[string]string{"direction": "east"})
	require.Equal(t, http.StatusOK, rec.Code)

	update := read()
	assert.Equal(t, websocket.EventStateUpdate, update.Event)
	assert.Equal(t, engine.NewPosition(4, 0), update.GameState.Marker)
}
