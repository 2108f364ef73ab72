package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/solver"
)

// ErrSessionNotFound is returned when a session ID is unknown.
var ErrSessionNotFound = errors.New("session not found")

// ErrBoardNotFound is returned when the board library has no board by that name.
var ErrBoardNotFound = errors.New("board not found")

// solverStateLimit bounds a single search. A 5x5 board has far fewer states.
const solverStateLimit = 1 << 16

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	boards   BoardLibrary
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, boards BoardLibrary) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		boards:   boards,
	}
}

// CreateSession creates a new game session on the named board, or on the
// library default when boardName is empty.
func (s *gameServiceImpl) CreateSession(ctx context.Context, boardName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var board engine.Board
	if boardName != "" {
		b, err := s.boards.LoadBoard(boardName)
		if err != nil {
			if errors.Is(err, ErrBoardNotFound) {
				return nil, s.boardNotFound(boardName, err)
			}
			return nil, fmt.Errorf("failed to load board %s: %w", boardName, err)
		}
		board = b
	} else {
		boardName, board = s.boards.GetDefault()
	}

	// Let session manager generate the ID
	session, err := s.sessions.Create("", boardName, board)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.WithFields(log.Fields{"session": session.ID, "board": boardName}).Debug("session created")
	return sessionInfo(session), nil
}

// boardNotFound lists the available board IDs alongside the lookup failure
func (s *gameServiceImpl) boardNotFound(name string, err error) error {
	available, listErr := s.boards.ListBoards()
	if listErr != nil || len(available) == 0 {
		return fmt.Errorf("board '%s': %w. Use /api/boards to list available boards", name, err)
	}
	ids := make([]string, 0, len(available))
	for _, b := range available {
		ids = append(ids, b.BoardID)
	}
	return fmt.Errorf("board '%s': %w. Available boards: %v", name, err, ids)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single slide for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent(sess))
	}

	from := sess.Engine.GetMarkerPosition()
	success := sess.Engine.Move(dir)
	to := sess.Engine.GetMarkerPosition()
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:   success,
		GameState: state,
		Message:   state.Message,
		Events:    append(events, moveEvents(state, dir, from, to, success)...),
	}
	if success {
		result.Step = &StepInfo{
			Idx:     1,
			Dir:     dir.Name(),
			From:    from,
			To:      to,
			Success: true,
			Victory: state.Victory,
		}
	}

	s.save(sessionID, "move")
	return result, nil
}

// BulkMove executes multiple slides in sequence. Execution stops at the
// first blocked slide, at an unparseable direction, or once the goal is reached.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent(sess))
	}
	result.StartPos = sess.Engine.GetMarkerPosition()

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsVictory() {
			result.StoppedReason = "puzzle already solved"
			result.StopReasonCode = "victory"
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d: %v", i+1, err)
			result.StopReasonCode = "invalid_direction"
			result.StoppedOnMove = i + 1
			break
		}

		from := sess.Engine.GetMarkerPosition()
		success := sess.Engine.Move(dir)
		to := sess.Engine.GetMarkerPosition()
		state := sess.Engine.GetState()
		result.Events = append(result.Events, moveEvents(state, dir, from, to, success)...)

		if !success {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s", i+1, dir.Name())
			result.StopReasonCode = "blocked"
			result.StoppedOnMove = i + 1
			break
		}

		result.MovesExecuted++
		result.Steps = append(result.Steps, StepInfo{
			Idx:     i + 1,
			Dir:     dir.Name(),
			From:    from,
			To:      to,
			Success: true,
			Victory: state.Victory,
		})
	}

	state := sess.Engine.GetState()
	result.GameState = state
	result.EndPos = state.Marker
	result.Victory = state.Victory
	result.Message = state.Message
	result.PossibleMoves = state.PossibleMoves
	if result.Victory && result.StopReasonCode == "" {
		result.StopReasonCode = "victory"
	}

	s.save(sessionID, "bulk move")
	return result, nil
}

// Reset resets a game session to its initial board
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset()
	s.save(sessionID, "reset")
	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return paginate(sess.Engine.GetMoveHistory(), opts), nil
}

func paginate(history []engine.MoveHistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	moves := []engine.MoveHistoryEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}

// Solve finds a shortest slide sequence from the session's current board
func (s *gameServiceImpl) Solve(ctx context.Context, sessionID string) (*SolveResult, error) {
	s.mu.RLock()
	sess, err := s.session(sessionID)
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	board := sess.Engine.Board()
	s.mu.RUnlock()

	return SolveFrom(ctx, board)
}

// Hint returns the first slide of a shortest solution from the current board
func (s *gameServiceImpl) Hint(ctx context.Context, sessionID string) (*HintResult, error) {
	res, err := s.Solve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch {
	case !res.Solvable:
		return &HintResult{Message: "No solution from here. Reset to try again."}, nil
	case res.Length == 0:
		return &HintResult{Solvable: true, Message: "The marker is already on the goal."}, nil
	}
	return &HintResult{
		Direction: res.Moves[0],
		Remaining: res.Length,
		Solvable:  true,
		Message:   fmt.Sprintf("Slide %s. The goal is %d slides away.", res.Moves[0], res.Length),
	}, nil
}

// SolveBoard parses text as a board and solves it
func (s *gameServiceImpl) SolveBoard(ctx context.Context, text string) (*SolveResult, error) {
	board, err := engine.Parse(text)
	if err != nil {
		return nil, err
	}
	return SolveFrom(ctx, board)
}

// SolveFrom runs the solver on board. An unsolvable board is not an error.
func SolveFrom(ctx context.Context, board engine.Board) (*SolveResult, error) {
	result := &SolveResult{
		Moves:      []string{},
		StartBoard: board.Rows(),
	}

	sol, err := solver.Solve[engine.Move](board,
		solver.WithContext(ctx),
		solver.WithMaxStates(solverStateLimit),
	)
	if errors.Is(err, solver.ErrNoSolution) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	result.Solvable = true
	result.Length = len(sol.Moves)
	result.Explored = sol.Explored
	result.Notation = engine.FormatMoves(sol.Moves)
	for _, step := range sol.Steps {
		result.Moves = append(result.Moves, step.Move.Direction.Name())
		result.Steps = append(result.Steps, SolutionStep{
			Direction: step.Move.Direction.Name(),
			Layout:    step.State.Rows(),
		})
	}
	return result, nil
}

// DescribeBoard summarizes a library board, including its shortest solution length
func DescribeBoard(name string, board engine.Board) *BoardInfo {
	info := &BoardInfo{
		Filename: name + ".txt",
		BoardID:  name,
		Layout:   board.Rows(),
		Goal:     board.End(),
		Walls:    board.Count(engine.Wall),
		MinMoves: -1,
	}
	if marker, ok := board.Marker(); ok {
		info.Start = marker
	}

	res, err := SolveFrom(context.Background(), board)
	if err != nil {
		log.WithError(err).WithField("board", name).Warn("failed to solve board")
		return info
	}
	if res.Solvable {
		info.Solvable = true
		info.MinMoves = res.Length
	}
	return info
}

// ListBoards returns the boards in the library
func (s *gameServiceImpl) ListBoards(ctx context.Context) ([]*BoardInfo, error) {
	return s.boards.ListBoards()
}

// LoadBoard returns information about one library board
func (s *gameServiceImpl) LoadBoard(ctx context.Context, name string) (*BoardInfo, error) {
	board, err := s.boards.LoadBoard(name)
	if err != nil {
		return nil, err
	}
	return DescribeBoard(name, board), nil
}

// SaveBoard parses text and stores it in the library under name
func (s *gameServiceImpl) SaveBoard(ctx context.Context, name, text string) (*BoardInfo, error) {
	board, err := s.boards.SaveBoard(name, text)
	if err != nil {
		return nil, err
	}
	log.WithField("board", name).Info("board saved")
	return DescribeBoard(name, board), nil
}

// session looks up a session and marks it accessed
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionNotFound, err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		log.WithError(err).WithField("session", sessionID).Debug("failed to touch session")
	}
	return sess, nil
}

// save persists a session after a state change. Failures are logged only.
func (s *gameServiceImpl) save(sessionID, op string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.WithError(err).WithField("session", sessionID).Warnf("failed to persist session after %s", op)
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		BoardName:      sess.BoardName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
	}
}

func resetEvent(sess *Session) GameEvent {
	return GameEvent{
		Type:      "reset",
		Message:   "Board reset to its starting position",
		Timestamp: time.Now(),
		Position:  sess.Engine.GetMarkerPosition(),
	}
}

// moveEvents generates events from a slide
func moveEvents(state *engine.GameState, dir engine.Direction, from, to engine.Position, success bool) []GameEvent {
	now := time.Now()
	if !success {
		return []GameEvent{{
			Type:      "blocked",
			Message:   state.Message,
			Timestamp: now,
			Position:  from,
		}}
	}

	events := []GameEvent{{
		Type:      "move",
		Message:   fmt.Sprintf("Slid %s from %v to %v", dir.Name(), from, to),
		Timestamp: now,
		Position:  to,
	}}
	if state.Victory {
		events = append(events, GameEvent{
			Type:      "victory",
			Message:   state.Message,
			Timestamp: now,
			Position:  to,
		})
	}
	return events
}
