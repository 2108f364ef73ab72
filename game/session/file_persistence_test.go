package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/service"
)

func newTestSession(t *testing.T, id string) *service.Session {
	t.Helper()
	eng, err := engine.NewEngine("classic", engine.MustParse(testBoard))
	require.NoError(t, err)
	return &service.Session{
		ID:             id,
		BoardName:      "classic",
		Engine:         eng,
		CreatedAt:      time.Now().Truncate(time.Second),
		LastAccessedAt: time.Now().Truncate(time.Second),
	}
}

func TestFilePersistence_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	persistence, err := NewFilePersistence(filepath.Join(dir, "sessions"))
	require.NoError(t, err)

	sess := newTestSession(t, "test1")
	require.True(t, sess.Engine.Move(engine.East))
	require.NoError(t, persistence.Save(sess))
	assert.True(t, persistence.Exists("test1"))
	assert.FileExists(t, filepath.Join(dir, "sessions", "test1.json"))
	assert.NoFileExists(t, filepath.Join(dir, "sessions", "test1.json.tmp"))

	loaded, err := persistence.Load("test1")
	require.NoError(t, err)
	assert.Equal(t, "test1", loaded.ID)
	assert.Equal(t, "classic", loaded.BoardName)
	assert.True(t, sess.CreatedAt.Equal(loaded.CreatedAt))
	assert.Equal(t, sess.Engine.Board(), loaded.Engine.Board())
	assert.Equal(t, sess.Engine.InitialBoard(), loaded.Engine.InitialBoard())
	assert.Equal(t, engine.NewPosition(4, 0), loaded.Engine.GetMarkerPosition())
	assert.Equal(t, 1, loaded.Engine.GetState().TotalMoves)
	assert.Equal(t, engine.East, loaded.Engine.GetMoveHistory()[0].Direction)

	// The restored engine keeps playing from where it left off
	require.True(t, loaded.Engine.Move(engine.South))
	require.True(t, loaded.Engine.Move(engine.West))
	assert.True(t, loaded.Engine.IsVictory())
}

func TestFilePersistence_SolvedSessionRoundTrip(t *testing.T) {
	persistence, err := NewFilePersistence(t.TempDir())
	require.NoError(t, err)

	sess := newTestSession(t, "won")
	sess.Engine.BulkMove([]engine.Direction{engine.East, engine.South, engine.West})
	require.True(t, sess.Engine.IsVictory())
	require.NoError(t, persistence.Save(sess))

	loaded, err := persistence.Load("won")
	require.NoError(t, err)
	assert.True(t, loaded.Engine.IsVictory())
	assert.True(t, loaded.Engine.GetState().Victory)
}

func TestFilePersistence_DeleteAndList(t *testing.T) {
	dir := t.TempDir()
	persistence, err := NewFilePersistence(dir)
	require.NoError(t, err)

	require.NoError(t, persistence.Save(newTestSession(t, "a")))
	require.NoError(t, persistence.Save(newTestSession(t, "b")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	ids, err := persistence.ListAll()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	require.NoError(t, persistence.Delete("a"))
	assert.False(t, persistence.Exists("a"))
	assert.ErrorIs(t, persistence.Delete("a"), ErrSessionNotFound)

	_, err = persistence.Load("a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFilePersistence_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	persistence, err := NewFilePersistence(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))
	_, err = persistence.Load("bad")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "badboard.json"),
		[]byte(`{"id":"badboard","initial_board":"S....\n"}`), 0644))
	_, err = persistence.Load("badboard")
	assert.ErrorIs(t, err, engine.ErrMalformedBoard)

	assert.Error(t, persistence.Save(nil))
}

func TestManagerWithPersistence(t *testing.T) {
	dir := t.TempDir()
	persistence, err := NewFilePersistence(dir)
	require.NoError(t, err)
	manager := NewManagerWithPersistence(persistence)
	board := engine.MustParse(testBoard)

	sess, err := manager.Create("auto1", "classic", board)
	require.NoError(t, err)
	assert.True(t, persistence.Exists(sess.ID), "creation saves the session")

	sess.Engine.Move(engine.East)
	require.NoError(t, manager.Save(sess.ID))

	t.Run("get loads from persistence", func(t *testing.T) {
		manager2 := NewManagerWithPersistence(persistence)
		loaded, err := manager2.Get("auto1")
		require.NoError(t, err)
		assert.Equal(t, engine.NewPosition(4, 0), loaded.Engine.GetMarkerPosition())
		assert.Equal(t, 1, manager2.Count())
	})

	t.Run("load all persisted sessions", func(t *testing.T) {
		_, err := manager.Create("auto2", "classic", board)
		require.NoError(t, err)

		manager3 := NewManagerWithPersistence(persistence)
		require.NoError(t, manager3.LoadPersistedSessions())
		assert.Equal(t, 2, manager3.Count())
	})

	t.Run("save all sessions", func(t *testing.T) {
		require.NoError(t, manager.SaveAllSessions())
	})

	t.Run("delete removes the file", func(t *testing.T) {
		require.NoError(t, manager.Delete("auto1"))
		assert.False(t, persistence.Exists("auto1"))
		_, err := manager.Get("auto1")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete from memory keeps the file", func(t *testing.T) {
		require.NoError(t, manager.DeleteFromMemory("auto2"))
		assert.True(t, persistence.Exists("auto2"))
		_, err := manager.Get("auto2")
		assert.NoError(t, err)
	})
}
