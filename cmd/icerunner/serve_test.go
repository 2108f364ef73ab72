package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/icerunner/transport/websocket"
)

func newStorageConfig(t *testing.T) storageConfig {
	t.Helper()
	boardsDir := t.TempDir()
	writeBoard(t, boardsDir, "classic.txt", classicBoard)
	return storageConfig{
		BoardsDir:   boardsDir,
		SessionsDir: filepath.Join(t.TempDir(), "sessions"),
	}
}

func TestInitializeServices(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := newStorageConfig(t)
	svc, err := initializeServices(ctx, cfg)
	require.NoError(t, err)
	defer svc.Close()

	info, err := svc.Game.CreateSession(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "classic", info.BoardName)
	assert.FileExists(t, filepath.Join(cfg.SessionsDir, info.ID+".json"))

	// A restart picks the session up from disk.
	restarted, err := initializeServices(ctx, cfg)
	require.NoError(t, err)
	defer restarted.Close()
	assert.Equal(t, 1, restarted.Sessions.Count())
}

func TestInitializeServices_InvalidBoardsDir(t *testing.T) {
	_, err := initializeServices(context.Background(), storageConfig{
		BoardsDir:   "/non/existent/path",
		SessionsDir: t.TempDir(),
	})
	assert.Error(t, err)
}

func TestInitializeServices_InvalidRedisURL(t *testing.T) {
	cfg := newStorageConfig(t)
	cfg.RedisURL = "not-a-url"
	_, err := initializeServices(context.Background(), cfg)
	assert.Error(t, err)
}

func TestSyncWithPersistence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := newStorageConfig(t)
	svc, err := initializeServices(ctx, cfg)
	require.NoError(t, err)

	kept, err := svc.Game.CreateSession(ctx, "")
	require.NoError(t, err)
	removed, err := svc.Game.CreateSession(ctx, "")
	require.NoError(t, err)

	assert.Zero(t, syncWithPersistence(svc.Sessions, svc.Persistence))

	require.NoError(t, os.Remove(filepath.Join(cfg.SessionsDir, removed.ID+".json")))
	assert.Equal(t, 1, syncWithPersistence(svc.Sessions, svc.Persistence))

	_, err = svc.Sessions.Get(kept.ID)
	assert.NoError(t, err)
	_, err = svc.Sessions.Get(removed.ID)
	assert.Error(t, err)
}

func TestFilesystemSyncRoutine(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := newStorageConfig(t)
	svc, err := initializeServices(ctx, cfg)
	require.NoError(t, err)

	info, err := svc.Game.CreateSession(ctx, "")
	require.NoError(t, err)

	go filesystemSyncRoutine(ctx, 10*time.Millisecond, svc.Sessions, svc.Persistence)
	require.NoError(t, os.Remove(filepath.Join(cfg.SessionsDir, info.ID+".json")))

	assert.Eventually(t, func() bool {
		return svc.Sessions.Count() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNewHandler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := initializeServices(ctx, newStorageConfig(t))
	require.NoError(t, err)

	hub := websocket.NewHub()
	go hub.Run(ctx)

	ts := httptest.NewUnstartedServer(nil)
	ts.Config.Handler = newHandler(svc.Game, hub, "http://"+ts.Listener.Addr().String())
	ts.Start()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"list_boards","arguments":{}}}`
	resp, err = http.Post(ts.URL+"/mcp", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rpc struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpc))
	require.NotEmpty(t, rpc.Result.Content)
	assert.Contains(t, rpc.Result.Content[0].Text, "classic")
}
