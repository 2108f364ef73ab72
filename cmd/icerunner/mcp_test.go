package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIAvailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	assert.True(t, apiAvailable(context.Background(), ts.URL))
	assert.False(t, apiAvailable(context.Background(), "http://127.0.0.1:1"))
}

func TestResolveAPI_External(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	baseURL, shutdown, err := resolveAPI(context.Background(), ts.URL, newStorageConfig(t))
	require.NoError(t, err)
	defer shutdown()
	assert.Equal(t, ts.URL, baseURL)
}

func TestResolveAPI_Internal(t *testing.T) {
	baseURL, shutdown, err := resolveAPI(context.Background(), "http://127.0.0.1:1", newStorageConfig(t))
	require.NoError(t, err)
	defer shutdown()

	assert.Contains(t, baseURL, "http://127.0.0.1:")
	assert.True(t, apiAvailable(context.Background(), baseURL))

	resp, err := http.Get(baseURL + "/api/boards")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResolveAPI_InvalidStorage(t *testing.T) {
	_, _, err := resolveAPI(context.Background(), "", storageConfig{BoardsDir: "/non/existent/path"})
	assert.Error(t, err)
}
