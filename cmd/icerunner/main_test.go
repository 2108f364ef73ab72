package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const (
	classicBoard  = "S....\n*....\n*....\n*....\nE....\n"
	boxedBoard    = "S*...\n*....\n.....\n.....\n....E\n"
	straightBoard = "S...E\n.....\n.....\n.....\n.....\n"
)

func writeBoard(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var coder cli.ExitCoder
	require.True(t, errors.As(err, &coder), "expected exit error, got %v", err)
	return coder.ExitCode()
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "1.0.0", Version)
	assert.Equal(t, "Ice Runner", AppName)
}

func TestSolveFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		board string
		want  []string
	}{
		{
			name:  "classic",
			board: classicBoard,
			want:  []string{"Parse done", "solution:\nS→↓←\n"},
		},
		{
			name:  "straight",
			board: straightBoard,
			want:  []string{"Parse done", "solution:\nS→\n"},
		},
		{
			name:  "boxed",
			board: boxedBoard,
			want:  []string{"Parse done", "no solution\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBoard(t, dir, tt.name+".txt", tt.board)

			var out bytes.Buffer
			require.NoError(t, solveFile(context.Background(), &out, path))

			assert.True(t, bytes.HasPrefix(out.Bytes(), []byte(tt.board)), "file is echoed first")
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestSolveFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		var out bytes.Buffer
		err := solveFile(context.Background(), &out, filepath.Join(dir, "nope.txt"))
		require.Error(t, err)
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, err.Error(), "Failed to read")
		assert.Empty(t, out.String())
	})

	t.Run("malformed board", func(t *testing.T) {
		path := writeBoard(t, dir, "bad.txt", "S....\n*....\n")

		var out bytes.Buffer
		err := solveFile(context.Background(), &out, path)
		require.Error(t, err)
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, out.String(), "Failed to parse IceRunner")
		assert.NotContains(t, out.String(), "Parse done")
	})
}

func TestApp_Run(t *testing.T) {
	path := writeBoard(t, t.TempDir(), "classic.txt", classicBoard)

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	require.NoError(t, app.Run(context.Background(), []string{"icerunner", path}))
	assert.Contains(t, out.String(), "S→↓←")
}

func TestApp_InvalidArguments(t *testing.T) {
	var out bytes.Buffer
	var handled error
	app := newApp()
	app.Writer = &out
	app.ExitErrHandler = func(_ context.Context, _ *cli.Command, err error) { handled = err }

	err := app.Run(context.Background(), []string{"icerunner"})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, handled))
	assert.Contains(t, out.String(), "Invalid arguments")
}
