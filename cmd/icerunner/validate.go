package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/icerunner/game/boards"
	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/solver"
)

// ValidationResult captures the outcome of validating a single board file.
// If Valid is true, Messages holds informational lines; otherwise it
// accumulates the problems that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...any) {
	r.Messages = append(r.Messages, "✓ "+fmt.Sprintf(format, args...))
}

// validateBoard loads a board file, parses it, and checks that the goal is
// reachable from the start.
func validateBoard(ctx context.Context, filePath string) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(filePath),
		Valid:    true,
		Messages: []string{},
	}

	name := strings.TrimSuffix(result.File, boards.Extension)
	if err := boards.ValidateName(name); err != nil {
		result.fail("%v", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	board, err := engine.Parse(string(data))
	if err != nil {
		result.fail("Invalid board: %v", err)
		return result
	}

	sol, err := solver.Solve[engine.Move](board, solver.WithContext(ctx))
	switch {
	case errors.Is(err, solver.ErrNoSolution):
		result.fail("Unsolvable: goal not reachable from the start")
		return result
	case err != nil:
		result.fail("Solver failed: %v", err)
		return result
	}

	if result.Valid {
		start, _ := board.Marker()
		result.info("Start: %s", start)
		result.info("Goal: %s", board.End())
		result.info("Walls: %d", board.Count(engine.Wall))
		result.info("Shortest solution: %d moves (%s)", len(sol.Moves), engine.FormatMoves(sol.Moves))
	}
	return result
}

// validateDir validates every board in dir and prints a concise report.
// It returns false if any board is invalid.
func validateDir(ctx context.Context, w io.Writer, dir string) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"+boards.Extension))
	if err != nil {
		return false, fmt.Errorf("finding board files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no board files in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateBoard(ctx, file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Messages {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				if !strings.HasPrefix(msg, "✓") {
					fmt.Fprintln(w, "  ❌ "+msg)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All boards are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some boards have errors")
	}
	return allValid, nil
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate every board in a directory",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = "boards"
			}

			ok, err := validateDir(ctx, cmd.Root().Writer, dir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if !ok {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
