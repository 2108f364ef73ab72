package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/service"
)

const instructions = `ICE RUNNER - GAME RULES

BOARD:
- 5x5 grid, row 0 at the top, column 0 on the left
- Positions are written (x,y): x is the column, y is the row

LEGEND:
- S = Marker (your piece)
- E = Goal
- * = Wall
- . = Ice

MOVEMENT:
- Slide north, south, west or east (aliases: up, down, left, right)
- The marker keeps sliding until the next cell is a wall or the board edge
- A slide that cannot move even one cell is blocked and changes nothing
- Sliding across the goal does not count; the marker must stop on it

OBJECTIVE:
Stop the marker on the goal. When the marker leaves the goal, the goal is shown again.

TIPS:
- Walls are the only places to stop in the middle of the board
- Use hint for the next slide of a shortest solution, or solve for the whole path
- bulk_move stops at the first blocked slide, at an invalid direction, or on reaching the goal`

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nBoard: %s\nCreated: %s\n\n%s",
		session.ID, session.BoardName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Marker: %s | Goal: %s | Moves: %d\n\n",
		state.Marker, state.Goal, state.CurrentMovesCount))

	for _, row := range state.Layout {
		result.WriteString(row)
		result.WriteString("\n")
	}
	result.WriteString("\nLegend: S=Marker, E=Goal, *=Wall, .=Ice\n")

	if len(state.PossibleMoves) > 0 {
		result.WriteString(fmt.Sprintf("Possible moves: %s\n", strings.Join(state.PossibleMoves, ", ")))
	}

	switch {
	case state.Victory:
		result.WriteString("\n🎉 VICTORY! The marker is on the goal.\n")
	case state.Stuck:
		result.WriteString("\n⚠️ The marker cannot slide in any direction. Use reset_game.\n")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\n%s\n", state.Message))
	}

	return result.String()
}

func formatStep(s service.StepInfo) string {
	status := "✗"
	if s.Success {
		status = "✓"
	}
	line := fmt.Sprintf("%d. %s %s→%s %s", s.Idx, s.Dir, s.From, s.To, status)
	if s.Victory {
		line += " (goal)"
	}
	return line + "\n"
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Slide successful\n"
	} else {
		response = "✗ Slide blocked\n"
	}

	if result.Step != nil {
		response += "Step: " + formatStep(*result.Step)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatBulkMoveResult(result *service.BulkMoveResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Executed %d/%d slides\n", result.MovesExecuted, result.RequestedMoves))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated to the first %d slides\n", result.Limit))
	}
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped on slide %d: %s\n", result.StoppedOnMove, result.StoppedReason))
	}
	b.WriteString(fmt.Sprintf("Marker: %s → %s\n", result.StartPos, result.EndPos))

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			b.WriteString(formatStep(s))
		}
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	if history.TotalMoves == 0 {
		return "No slides yet"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Move History (page %d/%d, %d total):\n\n",
		history.Page, history.TotalPages, history.TotalMoves))

	for _, move := range history.Moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		b.WriteString(fmt.Sprintf("%d. %s %s→%s %s\n",
			move.MoveNumber, move.Direction.Name(), move.FromPosition, move.ToPosition, status))
	}

	if history.HasNext {
		b.WriteString(fmt.Sprintf("\nMore on page %d\n", history.Page+1))
	}
	return b.String()
}

func formatSolveResult(result *service.SolveResult) string {
	var b strings.Builder

	if len(result.StartBoard) > 0 {
		for _, row := range result.StartBoard {
			b.WriteString(row + "\n")
		}
		b.WriteString("\n")
	}

	if !result.Solvable {
		b.WriteString(fmt.Sprintf("No solution (%d states explored)\n", result.Explored))
		return b.String()
	}

	if result.Length == 0 {
		b.WriteString("The marker is already on the goal\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Solution in %d slides: %s\n", result.Length, result.Notation))
	b.WriteString(fmt.Sprintf("Directions: %s\n", strings.Join(result.Moves, ", ")))
	b.WriteString(fmt.Sprintf("States explored: %d\n", result.Explored))
	return b.String()
}

func formatBoards(infos []service.BoardInfo) string {
	if len(infos) == 0 {
		return "No boards available"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Available Boards (%d):\n", len(infos)))
	for _, info := range infos {
		b.WriteString(fmt.Sprintf("\n%s (walls: %d, start %s, goal %s)\n", info.BoardID, info.Walls, info.Start, info.Goal))
		if info.Solvable {
			b.WriteString(fmt.Sprintf("Shortest solution: %d slides\n", info.MinMoves))
		} else {
			b.WriteString("Unsolvable\n")
		}
		for _, row := range info.Layout {
			b.WriteString(row + "\n")
		}
	}
	b.WriteString("\nUse create_session with board_id to play a board.\n")
	return b.String()
}
