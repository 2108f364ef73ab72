package boards

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/service"
)

// Extension is the file suffix of stored boards.
const Extension = ".txt"

// DefaultName is the board preferred as the library default.
const DefaultName = "classic"

// ErrInvalidName is returned for board names outside [a-z0-9_-].
var ErrInvalidName = errors.New("invalid board name")

var validName = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// minimalBoard is used when the directory has no usable board.
const minimalBoard = "S....\n" +
	"*....\n" +
	"*....\n" +
	"*....\n" +
	"E....\n"

// Manager handles board loading and caching
type Manager struct {
	dir          string
	defaultName  string
	defaultBoard engine.Board
	boards       map[string]engine.Board
	mu           sync.RWMutex
}

// NewManager creates a new board library rooted at dir
func NewManager(dir string) (*Manager, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("boards directory does not exist: %s", dir)
	}

	m := &Manager{
		dir:    dir,
		boards: make(map[string]engine.Board),
	}
	m.loadDefault()
	return m, nil
}

// ValidateName checks that name can be used as a board file name
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// LoadBoard loads a board by name, from cache when possible
func (m *Manager) LoadBoard(name string) (engine.Board, error) {
	name = strings.TrimSuffix(name, Extension)

	m.mu.RLock()
	if board, ok := m.boards[name]; ok {
		m.mu.RUnlock()
		return board, nil
	}
	m.mu.RUnlock()

	if err := ValidateName(name); err != nil {
		return engine.Board{}, fmt.Errorf("%w: %w", service.ErrBoardNotFound, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if board, ok := m.boards[name]; ok {
		return board, nil
	}

	data, err := os.ReadFile(filepath.Join(m.dir, name+Extension))
	if err != nil {
		if os.IsNotExist(err) {
			return engine.Board{}, fmt.Errorf("%w: %s", service.ErrBoardNotFound, name)
		}
		return engine.Board{}, fmt.Errorf("failed to read board file: %w", err)
	}

	board, err := engine.Parse(string(data))
	if err != nil {
		return engine.Board{}, fmt.Errorf("board %s: %w", name, err)
	}

	m.boards[name] = board
	return board, nil
}

// Names returns the names of all board files in the directory, sorted
func (m *Manager) Names() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read boards directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}

// ListBoards returns information about all loadable boards. Files that fail
// to parse are skipped with a warning.
func (m *Manager) ListBoards() ([]*service.BoardInfo, error) {
	names, err := m.Names()
	if err != nil {
		return nil, err
	}

	infos := make([]*service.BoardInfo, 0, len(names))
	for _, name := range names {
		board, err := m.LoadBoard(name)
		if err != nil {
			log.WithError(err).WithField("board", name).Warn("skipping unreadable board")
			continue
		}
		infos = append(infos, service.DescribeBoard(name, board))
	}
	return infos, nil
}

// GetDefault returns the default board and its name
func (m *Manager) GetDefault() (string, engine.Board) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultName, m.defaultBoard
}

// SetDefault sets the default board by name
func (m *Manager) SetDefault(name string) error {
	board, err := m.LoadBoard(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultName = name
	m.defaultBoard = board
	return nil
}

// RefreshCache drops all cached boards and reselects the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.boards = make(map[string]engine.Board)
	m.mu.Unlock()

	m.loadDefault()
}

// loadDefault picks classic, then the first loadable board, then the built-in board
func (m *Manager) loadDefault() {
	if m.SetDefault(DefaultName) == nil {
		return
	}

	names, err := m.Names()
	if err == nil {
		for _, name := range names {
			if m.SetDefault(name) == nil {
				return
			}
		}
	}

	log.WithField("dir", m.dir).Warn("no usable board found, using built-in default")
	m.mu.Lock()
	m.defaultName = "default"
	m.defaultBoard = engine.MustParse(minimalBoard)
	m.mu.Unlock()
}

// SaveBoard parses text and writes it to disk under name
func (m *Manager) SaveBoard(name, text string) (engine.Board, error) {
	if err := ValidateName(name); err != nil {
		return engine.Board{}, err
	}

	board, err := engine.Parse(text)
	if err != nil {
		return engine.Board{}, err
	}

	path := filepath.Join(m.dir, name+Extension)
	if err := os.WriteFile(path, []byte(board.String()), 0644); err != nil {
		return engine.Board{}, fmt.Errorf("failed to write board file: %w", err)
	}

	m.mu.Lock()
	m.boards[name] = board
	m.mu.Unlock()

	return board, nil
}
