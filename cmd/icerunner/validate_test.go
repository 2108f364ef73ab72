package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBoard(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		result := validateBoard(ctx, writeBoard(t, dir, "classic.txt", classicBoard))
		assert.True(t, result.Valid, result.Messages)
		assert.Equal(t, "classic.txt", result.File)
		assert.Contains(t, result.Messages, "✓ Shortest solution: 3 moves (S→↓←)")
		assert.Contains(t, result.Messages, "✓ Walls: 3")
	})

	t.Run("unsolvable", func(t *testing.T) {
		result := validateBoard(ctx, writeBoard(t, dir, "boxed.txt", boxedBoard))
		assert.False(t, result.Valid)
		require.Len(t, result.Messages, 1)
		assert.Contains(t, result.Messages[0], "Unsolvable")
	})

	t.Run("malformed", func(t *testing.T) {
		result := validateBoard(ctx, writeBoard(t, dir, "twostarts.txt", "SS...\n.....\n.....\n.....\n....E\n"))
		assert.False(t, result.Valid)
		assert.Contains(t, result.Messages[0], "Invalid board")
	})

	t.Run("bad name", func(t *testing.T) {
		result := validateBoard(ctx, writeBoard(t, dir, "Bad Name.txt", classicBoard))
		assert.False(t, result.Valid)
	})

	t.Run("missing file", func(t *testing.T) {
		result := validateBoard(ctx, dir+"/missing.txt")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Messages[0], "Failed to read file")
	})
}

func TestValidateDir(t *testing.T) {
	ctx := context.Background()

	t.Run("all valid", func(t *testing.T) {
		dir := t.TempDir()
		writeBoard(t, dir, "classic.txt", classicBoard)
		writeBoard(t, dir, "straight.txt", straightBoard)

		var out bytes.Buffer
		ok, err := validateDir(ctx, &out, dir)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, out.String(), "All boards are valid")
	})

	t.Run("some invalid", func(t *testing.T) {
		dir := t.TempDir()
		writeBoard(t, dir, "classic.txt", classicBoard)
		writeBoard(t, dir, "boxed.txt", boxedBoard)

		var out bytes.Buffer
		ok, err := validateDir(ctx, &out, dir)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, out.String(), "❌ INVALID")
		assert.Contains(t, out.String(), "Some boards have errors")
	})

	t.Run("empty dir", func(t *testing.T) {
		_, err := validateDir(ctx, &bytes.Buffer{}, t.TempDir())
		assert.Error(t, err)
	})
}

func TestAnalyzeBoard(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a, err := analyzeBoard(ctx, writeBoard(t, dir, "classic.txt", classicBoard))
	require.NoError(t, err)
	assert.Equal(t, 3, a.Walls)
	assert.Equal(t, 3, a.Exploration.GoalDepth)
	assert.Equal(t, 1, a.Exploration.Goals)

	var out bytes.Buffer
	printAnalysis(&out, a)
	assert.Contains(t, out.String(), "Goal reachable in 3 moves")

	a, err = analyzeBoard(ctx, writeBoard(t, dir, "boxed.txt", boxedBoard))
	require.NoError(t, err)
	assert.Equal(t, -1, a.Exploration.GoalDepth)
	assert.Equal(t, 1, a.Exploration.States)
	assert.Equal(t, 1, a.Exploration.DeadEnds)

	_, err = analyzeBoard(ctx, writeBoard(t, dir, "bad.txt", "S\n"))
	assert.Error(t, err)
}

func TestShippedBoards(t *testing.T) {
	var out bytes.Buffer
	ok, err := validateDir(context.Background(), &out, "../../boards")
	require.NoError(t, err)
	assert.True(t, ok, out.String())

	want := map[string]int{
		"classic.txt":  3,
		"straight.txt": 1,
		"detour.txt":   5,
		"hook.txt":     4,
	}
	for name, moves := range want {
		a, err := analyzeBoard(context.Background(), "../../boards/"+name)
		require.NoError(t, err, name)
		assert.Equal(t, moves, a.Exploration.GoalDepth, name)
	}
}
